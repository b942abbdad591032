// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	prefsstore "github.com/ohenegyan12/church-management/internal/app/store/prefs"
	"github.com/ohenegyan12/church-management/internal/app/system/ratelimit"
)

// DBDeps holds the in-memory backends shared by every feature.
type DBDeps struct {
	DB    *memstore.DB
	Set   *collections.Set
	Prefs *prefsstore.Store

	// Limiter is created here so Shutdown can stop its eviction loop.
	Limiter *ratelimit.LoginLimiter
}
