// internal/app/features/documents/handler.go
package documents

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const gridTarget = "document-grid"

// Handler serves the document library. Edit and delete go through Crud.
type Handler struct {
	Set  *collections.Set
	Crud *crud.Handler[models.Document]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:    set,
		Crud:   crud.NewHandler(Resource(set, logger), errLog, flasher, logger),
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

// CategoryCount is one entry of the category filter.
type CategoryCount struct {
	Name   string
	Count  int
	Active bool
}

type docRow struct {
	ID          int64
	Name        string
	FileType    string
	Category    string
	Size        string
	UploadedBy  string
	Date        string
	Downloads   string
	Description string
}

type listData struct {
	viewdata.BaseVM
	Q          string
	Category   string
	Categories []CategoryCount
	Stats      []crud.Stat
	Rows       []docRow
	ReturnURL  string
}

// Counts tallies documents per category. The first entry is the
// "All Documents" total; categories outside the known list follow the
// known ones.
func Counts(docs []models.Document, active string) []CategoryCount {
	per := make(map[string]int)
	names := slices.Clone(Categories)
	for _, d := range docs {
		if !slices.Contains(names, d.Category) {
			names = append(names, d.Category)
		}
		per[d.Category]++
	}
	out := []CategoryCount{{Name: "All Documents", Count: len(docs), Active: active == ""}}
	for _, n := range names {
		out = append(out, CategoryCount{Name: n, Count: per[n], Active: n == active})
	}
	return out
}

// ServeList renders the library, filtered by ?category= and ?q=.
//
// Route: GET /administration/documents
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	docs, err := h.Set.Documents.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list documents failed", err, "Unable to load documents.", "/dashboard")
		return
	}

	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Documents", "/dashboard"),
		Q:         query.Search(r, "q"),
		Category:  query.Get(r, "category"),
		ReturnURL: httpnav.CurrentPath(r),
	}
	data.Subtitle = "Policies, templates and media shared across the church"
	data.Categories = Counts(docs, data.Category)

	downloads := 0
	for _, d := range docs {
		downloads += d.Downloads
	}
	data.Stats = []crud.Stat{
		{Label: "Documents", Value: shared.Count(len(docs))},
		{Label: "Downloads", Value: shared.Count(downloads), Tone: "ok"},
		{Label: "Categories", Value: shared.Count(len(data.Categories) - 1)},
	}

	slices.SortStableFunc(docs, func(a, b models.Document) int { return b.Date.Compare(a.Date) })
	fq := text.Fold(data.Q)
	for _, d := range docs {
		if data.Category != "" && d.Category != data.Category {
			continue
		}
		if fq != "" && !strings.Contains(text.Fold(d.Name+" "+d.Description), fq) {
			continue
		}
		data.Rows = append(data.Rows, row(d))
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == gridTarget {
		templates.RenderSnippet(w, "document_grid", data)
		return
	}
	templates.Render(w, r, "documents_list", data)
}

func row(d models.Document) docRow {
	return docRow{
		ID:          d.ID,
		Name:        d.Name,
		FileType:    d.FileType,
		Category:    d.Category,
		Size:        d.Size,
		UploadedBy:  d.UploadedBy,
		Date:        shared.Date(d.Date),
		Downloads:   shared.Count(d.Downloads),
		Description: d.Description,
	}
}

type viewData struct {
	formutil.Base
	Doc docRow
}

// ServeDocument shows a document's details.
//
// Route: GET /administration/documents/{id}
func (h *Handler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid document link.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Set.Documents.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "document not found", err, "That document no longer exists.", Base)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load document failed", err, "Unable to load the document.", Base)
		return
	}

	data := viewData{Doc: row(d)}
	formutil.SetBase(&data.Base, r, d.Name, Base)
	formutil.Render(w, r, "document_view", data)
}

// HandleDownload counts a download. No file is served; the click is
// acknowledged with a toast.
//
// Route: POST /administration/documents/{id}/download
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid document link.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Set.Documents.Update(ctx, id, func(d *models.Document) error {
		d.Downloads++
		return nil
	})
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "document not found", err, "That document no longer exists.", Base)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count download failed", err, "Unable to download the document.", Base)
		return
	}

	metrics.Mutation(h.Set.Documents.Name(), "downloaded")
	h.Log.Info("document downloaded", zap.Int64("id", id), zap.Int("downloads", d.Downloads))
	h.Flash.Success(w, r, "Downloading "+d.Name+"...")
	formutil.Redirect(w, r, backURL(r))
}

func (h *Handler) record(ctx context.Context, w http.ResponseWriter, r *http.Request, action string, d models.Document, msg string) {
	metrics.Mutation(h.Set.Documents.Name(), action)
	h.Log.Info("document "+action, zap.Int64("id", d.ID), zap.String("category", d.Category))
	if h.Crud.Res.OnChange != nil {
		h.Crud.Res.OnChange(ctx, action, d)
	}
	h.Flash.Success(w, r, msg)
}
