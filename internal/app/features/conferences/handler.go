// internal/app/features/conferences/handler.go
package conferences

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

// cardsTarget is the element htmx swaps when the search box changes.
const cardsTarget = "conference-cards"

// Handler serves the card grid and detail page; the add, edit and delete
// modals come from the generic Crud handler.
type Handler struct {
	Set    *collections.Set
	Crud   *crud.Handler[models.Conference]
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

type card struct {
	ID          int64
	Name        string
	Bishop      string
	Region      string
	Districts   string
	Societies   string
	Members     string
	Established string
	Status      string
}

type listData struct {
	viewdata.BaseVM
	Q     string
	Cards []card
}

type districtRow struct {
	ID             int64
	Name           string
	Superintendent string
	Societies      string
	Members        string
	Status         string
}

type detailData struct {
	viewdata.BaseVM
	Conference models.Conference
	Members    string
	Districts  []districtRow
}

// ServeList renders the conference cards, filtered by ?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Set.Conferences.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list conferences failed", err, "Unable to load conferences.", "/dashboard")
		return
	}
	rows = h.Crud.Filter(rows, q)

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Conferences", "/dashboard"),
		Q:      q,
	}
	data.Subtitle = "Manage annual conferences and their bishops"
	for _, c := range rows {
		data.Cards = append(data.Cards, card{
			ID:          c.ID,
			Name:        c.Name,
			Bishop:      c.Bishop,
			Region:      c.Region,
			Districts:   shared.Count(c.Districts),
			Societies:   shared.Count(c.Societies),
			Members:     shared.Count(c.Members),
			Established: c.Established,
			Status:      c.Status,
		})
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == cardsTarget {
		templates.RenderSnippet(w, "conference_cards", data)
		return
	}
	templates.Render(w, r, "conferences_list", data)
}

// ServeDetail renders one conference with the districts under it.
//
// Route: GET /church-structure/conferences/{id}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid conference link.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	conf, err := h.Set.Conferences.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "conference not found", err, "Conference not found.", Base)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load conference failed", err, "Unable to load the conference.", Base)
		return
	}

	districts, err := DistrictsOf(ctx, h.Set, conf.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list districts failed", err, "Unable to load the conference.", Base)
		return
	}

	data := detailData{
		BaseVM:     viewdata.NewBaseVM(r, conf.Name, Base),
		Conference: conf,
		Members:    shared.Count(conf.Members),
	}
	data.BackURL = Base
	data.Subtitle = conf.Bishop
	for _, d := range districts {
		data.Districts = append(data.Districts, districtRow{
			ID:             d.ID,
			Name:           d.Name,
			Superintendent: d.Superintendent,
			Societies:      shared.Count(d.Societies),
			Members:        shared.Count(d.Members),
			Status:         d.Status,
		})
	}
	templates.Render(w, r, "conference_detail", data)
}

// DistrictsOf lists the districts whose conference is name, ignoring case.
func DistrictsOf(ctx context.Context, set *collections.Set, name string) ([]models.District, error) {
	fn := text.Fold(strings.TrimSpace(name))
	return set.Districts.Find(ctx, func(d models.District) bool {
		return text.Fold(d.Conference) == fn
	})
}
