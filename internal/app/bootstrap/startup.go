// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/ohenegyan12/church-management/internal/app/resources"
	notificationstore "github.com/ohenegyan12/church-management/internal/app/store/notifications"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Startup registers the shared templates and points the layout loaders at
// the stores. It runs after EnsureSchema and before BuildHandler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	timeouts.Configure(appCfg.Timeouts)

	settings := settingsstore.New(deps.Set.Settings)
	notes := notificationstore.New(deps.Set.Notifications)

	viewdata.SetSiteNameLoader(func(ctx context.Context) string {
		st, err := settings.Get(ctx)
		if err != nil || st.OrgName == "" {
			return appCfg.SiteName
		}
		return st.OrgName
	})
	viewdata.SetUnreadLoader(func(ctx context.Context) int {
		n, err := notes.Unread(ctx)
		if err != nil {
			logger.Warn("count unread notifications failed", zap.Error(err))
			return 0
		}
		return n
	})
	viewdata.SetCollapsedLoader(func(ctx context.Context, browserID string) bool {
		return deps.Prefs.Get(ctx, browserID).SidebarCollapsed
	})

	metrics.RegisterStoreSizes(deps.DB.Sizes)
	return nil
}
