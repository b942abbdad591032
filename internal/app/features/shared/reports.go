package shared

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// ReportSpec configures a generated-report table.
type ReportSpec struct {
	Base     string
	Plural   string
	Subtitle string
	Types    []string
	Store    *memstore.Collection[models.Report]
	Badge    string
}

// ReportResource describes a generated report. Only type and period are
// asked for; the name, generation date and size are filled in on create.
func ReportResource(set *collections.Set, logger *zap.Logger, spec ReportSpec) *crud.Resource[models.Report] {
	title := func(r *models.Report) string { return r.Name }
	return &crud.Resource[models.Report]{
		Base:     spec.Base,
		Singular: "Report",
		Plural:   spec.Plural,
		Subtitle: spec.Subtitle,
		Store:    spec.Store,
		Fields: []crud.Field[models.Report]{
			crud.SelectField("type", "Report type", "required", spec.Types,
				func(r *models.Report) *string { return &r.Type }),
			crud.StringField("period", "Period", crud.Text, "required,max=60",
				func(r *models.Report) *string { return &r.Period }),
			crud.StringField("name", "Report name", crud.Text, "max=200",
				func(r *models.Report) *string { return &r.Name }),
		},
		Columns: []crud.Column[models.Report]{
			{Label: "Report", Value: title, Primary: true},
			{Label: "Type", Value: func(r *models.Report) string { return r.Type }},
			{Label: "Period", Value: func(r *models.Report) string { return r.Period }},
			{Label: "Generated", Value: func(r *models.Report) string { return Date(r.Generated) }},
			{Label: "Size", Value: func(r *models.Report) string { return r.Size }},
		},
		Title:    title,
		ReadOnly: true,
		Prepare: func(ctx context.Context, r *models.Report, isNew bool) error {
			if r.Name == "" {
				r.Name = r.Period + " " + r.Type + " Report"
			}
			if isNew {
				r.Generated = spec.Store.Now()
				n, err := spec.Store.Count(ctx)
				if err != nil {
					return err
				}
				r.Size = ReportSize(n)
			}
			return nil
		},
		OnChange: Activity(set, logger, spec.Badge, "Report", title),
	}
}

// ReportRow is one line of a report table.
type ReportRow struct {
	ID        int64
	Name      string
	Type      string
	Period    string
	Generated string
	Size      string
}

// ReportRows orders reports newest first for display.
func ReportRows(rows []models.Report) []ReportRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Generated.After(rows[j].Generated) })
	out := make([]ReportRow, 0, len(rows))
	for _, rep := range rows {
		out = append(out, ReportRow{
			ID:        rep.ID,
			Name:      rep.Name,
			Type:      rep.Type,
			Period:    rep.Period,
			Generated: Date(rep.Generated),
			Size:      rep.Size,
		})
	}
	return out
}

// ReportSize is the nominal file size shown for the nth generated report.
func ReportSize(n int) string {
	kb := 180 + (n%9)*140
	if kb >= 1000 {
		return fmt.Sprintf("%.1f MB", float64(kb)/1000)
	}
	return fmt.Sprintf("%d KB", kb)
}

// Downloads serves the download button of a report table. Files are not
// produced; the click is counted and acknowledged with a toast.
type Downloads struct {
	Store  *memstore.Collection[models.Report]
	Base   string
	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

// HandleDownload handles POST {base}/{id}/download.
func (d *Downloads) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid report link.", d.Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rep, err := d.Store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		d.ErrLog.LogNotFound(w, r, "report not found", err, "That report no longer exists.", d.Base)
		return
	}
	if err != nil {
		d.ErrLog.LogServerError(w, r, "load report failed", err, "Unable to load the report.", d.Base)
		return
	}

	metrics.Mutation(d.Store.Name(), "downloaded")
	d.Log.Info("report downloaded", zap.Int64("id", id), zap.String("name", rep.Name))
	d.Flash.Success(w, r, "Downloading "+rep.Name+"...")
	formutil.Redirect(w, r, d.Base)
}
