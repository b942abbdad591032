package shared

import (
	"context"

	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/queries/dashboardstats"
	"go.uber.org/zap"
)

// Activity returns a crud OnChange hook that writes a line such as
// "Conference created: Ashanti Conference" to the dashboard feed.
// A failed write is logged and otherwise ignored; the mutation itself has
// already succeeded.
func Activity[T any](set *collections.Set, logger *zap.Logger, badge, noun string, title func(*T) string) func(ctx context.Context, action string, rec T) {
	return func(ctx context.Context, action string, rec T) {
		msg := noun + " " + action
		if title != nil {
			if t := title(&rec); t != "" {
				msg += ": " + t
			}
		}
		if err := dashboardstats.LogActivity(ctx, set, badge, msg); err != nil {
			logger.Warn("activity feed write failed", zap.String("message", msg), zap.Error(err))
		}
	}
}
