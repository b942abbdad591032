// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/ohenegyan12/church-management/internal/app/seed"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	prefsstore "github.com/ohenegyan12/church-management/internal/app/store/prefs"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// ConnectDB builds the in-memory backends. Nothing here can fail today, but
// the hook keeps WAFFLE's shape so a real database can replace memstore.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db := memstore.New()
	set := collections.Open(db)

	logger.Info("in-memory store ready", zap.Int("collections", len(db.Names())))

	return DBDeps{
		DB:      db,
		Set:     set,
		Prefs:   prefsstore.New(),
		Limiter: ratelimit.NewLoginLimiter(float64(appCfg.LoginRatePerMinute), appCfg.LoginRateBurst),
	}, nil
}

// EnsureSchema loads the demo fixture and hashes the configured console
// password into settings.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedEnabled {
		if _, err := seed.Load(ctx, deps.Set, logger); err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
	} else {
		logger.Info("seeding disabled; starting with empty collections")
	}

	if err := settingsstore.New(deps.Set.Settings).SetPassword(ctx, appCfg.ConsolePassword); err != nil {
		return fmt.Errorf("set console password: %w", err)
	}
	return nil
}
