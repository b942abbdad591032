// internal/app/features/reports/membershipcsv.go
package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ohenegyan12/church-management/internal/app/features/conferences"
	"github.com/ohenegyan12/church-management/internal/app/features/districts"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Branch is one district of a conference with the societies under it.
type Branch struct {
	District  models.District
	Societies []models.Society
}

// Tree walks conference -> districts -> societies by display name.
func Tree(ctx context.Context, set *collections.Set, conf models.Conference) ([]Branch, error) {
	ds, err := conferences.DistrictsOf(ctx, set, conf.Name)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, 0, len(ds))
	for _, d := range ds {
		socs, err := districts.SocietiesOf(ctx, set, d.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, Branch{District: d, Societies: socs})
	}
	return out, nil
}

// ServeMembershipCSV handles GET /reports/membership.csv and streams one
// row per society with its district and conference. ?conference={id}
// narrows the export to one conference.
func (h *Handler) ServeMembershipCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "membership csv export")
	defer cancel()

	confs, err := h.Set.Conferences.List(ctx)
	if err != nil {
		h.Log.Error("list conferences for CSV failed", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if raw := r.URL.Query().Get("conference"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid conference id", http.StatusBadRequest)
			return
		}
		var only []models.Conference
		for _, c := range confs {
			if c.ID == id {
				only = append(only, c)
			}
		}
		if len(only) == 0 {
			http.Error(w, "conference not found", http.StatusNotFound)
			return
		}
		confs = only
	}

	var records [][]string
	for _, c := range confs {
		tree, err := Tree(ctx, h.Set, c)
		if err != nil {
			h.Log.Error("load conference tree for CSV failed", zap.String("conference", c.Name), zap.Error(err))
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
		for _, b := range tree {
			for _, s := range b.Societies {
				records = append(records, []string{
					c.Name, b.District.Name, s.Name, s.Pastor, strconv.Itoa(s.Members), s.Status,
				})
			}
		}
	}

	filename := fmt.Sprintf("membership_%s.csv", h.Set.Reports.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Conference", "District", "Society", "Pastor", "Members", "Status"})
	_ = cw.WriteAll(records)
	if err := cw.Error(); err != nil {
		h.Log.Warn("membership CSV write failed", zap.Error(err))
	}
}
