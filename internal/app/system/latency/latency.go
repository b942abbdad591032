// Package latency delays mutating requests by a configured amount so the
// console's loading states can be seen during demos.
package latency

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Middleware holds POST requests for d before passing them on. A request
// whose context ends first is dropped with 503. d <= 0 disables the delay.
func Middleware(d time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-r.Context().Done():
				logger.Debug("request cancelled during simulated latency",
					zap.String("path", r.URL.Path), zap.Error(r.Context().Err()))
				http.Error(w, "request cancelled", http.StatusServiceUnavailable)
			case <-t.C:
				next.ServeHTTP(w, r)
			}
		})
	}
}
