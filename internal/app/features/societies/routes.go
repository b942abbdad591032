// internal/app/features/societies/routes.go
package societies

import (
	"github.com/go-chi/chi/v5"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// NewHandler builds the generic handler for the societies table.
func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *crud.Handler[models.Society] {
	return crud.NewHandler(Resource(set, logger), errLog, flasher, logger)
}

func Routes(h *crud.Handler[models.Society]) chi.Router {
	return crud.Routes(h)
}
