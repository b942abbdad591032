// internal/app/features/districts/handler.go
package districts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// previewSocieties is how many societies the detail page lists before the
// "show all" toggle.
const previewSocieties = 5

type Handler struct {
	Set    *collections.Set
	Crud   *crud.Handler[models.District]
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:    set,
		Crud:   crud.NewHandler(Resource(set, logger), errLog, flasher, logger),
		ErrLog: errLog,
		Log:    logger,
	}
}

type societyRow struct {
	ID      int64
	Name    string
	Pastor  string
	Members string
	Status  string
}

type detailData struct {
	viewdata.BaseVM
	District     models.District
	Members      string
	ConferenceID int64
	Societies    []societyRow
	TotalSoc     int
	ShowAll      bool
	Hidden       int
}

// ServeDetail renders a district and its societies. Only the first few
// societies are listed unless ?all=1.
//
// Route: GET /church-structure/districts/{id}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid district link.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Set.Districts.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "district not found", err, "District not found.", Base)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load district failed", err, "Unable to load the district.", Base)
		return
	}

	socs, err := SocietiesOf(ctx, h.Set, d.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list societies failed", err, "Unable to load the district.", Base)
		return
	}

	data := detailData{
		BaseVM:   viewdata.NewBaseVM(r, d.Name, Base),
		District: d,
		Members:  shared.Count(d.Members),
		TotalSoc: len(socs),
		ShowAll:  query.Get(r, "all") == "1",
	}
	data.BackURL = Base
	data.Subtitle = d.Conference
	data.ConferenceID = h.conferenceID(ctx, d.Conference)

	shown := socs
	if !data.ShowAll && len(shown) > previewSocieties {
		shown = shown[:previewSocieties]
		data.Hidden = len(socs) - previewSocieties
	}
	for _, s := range shown {
		data.Societies = append(data.Societies, societyRow{
			ID:      s.ID,
			Name:    s.Name,
			Pastor:  s.Pastor,
			Members: shared.Count(s.Members),
			Status:  s.Status,
		})
	}
	templates.Render(w, r, "district_detail", data)
}

// conferenceID finds the conference the district belongs to, for the
// breadcrumb link. Zero means no match.
func (h *Handler) conferenceID(ctx context.Context, name string) int64 {
	fn := text.Fold(name)
	rows, err := h.Set.Conferences.Find(ctx, func(c models.Conference) bool { return text.Fold(c.Name) == fn })
	if err != nil {
		h.Log.Warn("conference lookup failed", zap.String("conference", name), zap.Error(err))
		return 0
	}
	if len(rows) == 0 {
		return 0
	}
	return rows[0].ID
}

// SocietiesOf lists the societies whose district is name, ignoring case.
func SocietiesOf(ctx context.Context, set *collections.Set, name string) ([]models.Society, error) {
	fn := text.Fold(strings.TrimSpace(name))
	return set.Societies.Find(ctx, func(s models.Society) bool {
		return text.Fold(s.District) == fn
	})
}
