// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	bulksmsfeature "github.com/ohenegyan12/church-management/internal/app/features/bulksms"
	conferencesfeature "github.com/ohenegyan12/church-management/internal/app/features/conferences"
	dashboardfeature "github.com/ohenegyan12/church-management/internal/app/features/dashboard"
	districtsfeature "github.com/ohenegyan12/church-management/internal/app/features/districts"
	documentsfeature "github.com/ohenegyan12/church-management/internal/app/features/documents"
	errorsfeature "github.com/ohenegyan12/church-management/internal/app/features/errors"
	eventsfeature "github.com/ohenegyan12/church-management/internal/app/features/events"
	financefeature "github.com/ohenegyan12/church-management/internal/app/features/finance"
	healthfeature "github.com/ohenegyan12/church-management/internal/app/features/health"
	homefeature "github.com/ohenegyan12/church-management/internal/app/features/home"
	hrfeature "github.com/ohenegyan12/church-management/internal/app/features/hr"
	loginfeature "github.com/ohenegyan12/church-management/internal/app/features/login"
	logoutfeature "github.com/ohenegyan12/church-management/internal/app/features/logout"
	membersfeature "github.com/ohenegyan12/church-management/internal/app/features/members"
	memosfeature "github.com/ohenegyan12/church-management/internal/app/features/memos"
	notificationsfeature "github.com/ohenegyan12/church-management/internal/app/features/notifications"
	reportsfeature "github.com/ohenegyan12/church-management/internal/app/features/reports"
	settingsfeature "github.com/ohenegyan12/church-management/internal/app/features/settings"
	societiesfeature "github.com/ohenegyan12/church-management/internal/app/features/societies"
	uifeature "github.com/ohenegyan12/church-management/internal/app/features/ui"
	usersfeature "github.com/ohenegyan12/church-management/internal/app/features/users"
	"github.com/ohenegyan12/church-management/internal/app/seed"
	notificationstore "github.com/ohenegyan12/church-management/internal/app/store/notifications"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/latency"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. WAFFLE calls it after config,
// ConnectDB, EnsureSchema and Startup have completed.
//
// Middleware order matters: the session user and browser ID must be in the
// context before CSRF and flash run, and flash must wrap every page so
// toasts queued by a redirect are shown on the next render.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode reloads templates from disk on each render.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Chart series come from the fixture even when seeding is off.
	fx, err := seed.Parse()
	if err != nil {
		logger.Error("parse seed fixture failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	flasher := flash.New(sessionMgr, logger)
	set := deps.Set

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(metrics.Middleware)

	// Unauthenticated machine endpoints sit outside sessions and CSRF.
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.DB, logger)))
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Set before the group and its mounts so every sub-router inherits it.
	notFound := sessionMgr.LoadSessionUser(flasher.Middleware(http.HandlerFunc(errorsfeature.NewHandler().NotFound)))
	r.NotFound(notFound.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.LoadSessionUser)
		r.Use(csrfMiddleware(appCfg, secure, logger)...)
		r.Use(flasher.Middleware)
		r.Use(latency.Middleware(appCfg.SimulatedLatency, logger))

		r.Get("/", homefeature.NewHandler().ServeIndex)

		// Authentication (simulated)
		console := loginfeature.Identity{Name: appCfg.ConsoleUserName, Role: appCfg.ConsoleUserRole}
		loginHandler := loginfeature.NewHandler(set.Users, sessionMgr, deps.Limiter, flasher, errLog, console, logger)
		r.Mount("/login", loginfeature.Routes(loginHandler))
		r.Mount("/forgot-password", loginfeature.ForgotRoutes(loginHandler))
		r.Mount("/logout", logoutfeature.Routes(logoutfeature.NewHandler(sessionMgr, logger)))

		// Layout chrome
		r.Mount("/ui", uifeature.Routes(uifeature.NewHandler(deps.Prefs, logger)))
		notes := notificationstore.New(set.Notifications)
		r.Mount("/notifications", notificationsfeature.Routes(notificationsfeature.NewHandler(notes, errLog, logger)))

		r.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(set, errLog, logger)))

		// Church structure
		r.Mount(conferencesfeature.Base, conferencesfeature.Routes(conferencesfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(districtsfeature.Base, districtsfeature.Routes(districtsfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(societiesfeature.Base, societiesfeature.Routes(societiesfeature.NewHandler(set, errLog, flasher, logger)))

		r.Mount("/members", membersfeature.Routes(membersfeature.NewHandler(set, errLog, flasher, logger)))

		settings := settingsstore.New(set.Settings)
		r.Mount("/finance", financefeature.Routes(financefeature.NewHandler(set, settings, errLog, flasher, logger)))
		r.Mount(reportsfeature.Base, reportsfeature.Routes(reportsfeature.NewHandler(set, fx, errLog, flasher, logger)))

		// Administration
		r.Mount(hrfeature.Base, hrfeature.Routes(hrfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(memosfeature.Base, memosfeature.Routes(memosfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(documentsfeature.Base, documentsfeature.Routes(documentsfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(bulksmsfeature.Base, bulksmsfeature.Routes(bulksmsfeature.NewHandler(set, errLog, flasher, logger)))

		r.Mount(eventsfeature.Base, eventsfeature.Routes(eventsfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(usersfeature.Base, usersfeature.Routes(usersfeature.NewHandler(set, errLog, flasher, logger)))
		r.Mount(settingsfeature.Base, settingsfeature.Routes(settingsfeature.NewHandler(set, errLog, flasher, logger)))
	})

	return r, nil
}

// requestLogger writes one zap line per request at debug level, or at warn
// for 5xx responses.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if ww.Status() >= http.StatusInternalServerError {
				logger.Warn("request failed", fields...)
				return
			}
			logger.Debug("request", fields...)
		})
	}
}

// csrfMiddleware protects every form post. The token key is derived from the
// session key so one secret configures both. Over plain HTTP the request is
// marked so gorilla/csrf skips its HTTPS-only referer check.
func csrfMiddleware(appCfg AppConfig, secure bool, logger *zap.Logger) []func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + appCfg.SessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName(appCfg.SessionName+"-csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderBadRequest(w, r, "Your form has expired. Reload the page and try again.", r.URL.Path)
		})),
	)
	plaintext := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			next.ServeHTTP(w, r)
		})
	}
	return []func(http.Handler) http.Handler{plaintext, protect}
}
