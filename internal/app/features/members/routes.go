// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Handler groups the three member tables. Each is a plain generic table
// whose details modal is the record view.
type Handler struct {
	Clergy      *crud.Handler[models.Clergy]
	LayOfficers *crud.Handler[models.LayOfficer]
	Staff       *crud.Handler[models.Staff]
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Clergy:      crud.NewHandler(ClergyResource(set, logger), errLog, flasher, logger),
		LayOfficers: crud.NewHandler(LayOfficerResource(set, logger), errLog, flasher, logger),
		Staff:       crud.NewHandler(StaffResource(set, logger), errLog, flasher, logger),
	}
}

// Routes mounts /members/clergy, /members/lay-officers and /members/staff.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Mount("/clergy", crud.Routes(h.Clergy))
	r.Mount("/lay-officers", crud.Routes(h.LayOfficers))
	r.Mount("/staff", crud.Routes(h.Staff))
	return r
}
