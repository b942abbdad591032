// internal/app/features/login/handler.go
package login

// Sign-in is simulated: any non-empty password is accepted and the session
// only records who is shown in the user panel. The email is looked up in
// the Users collection for a display name and role; unknown addresses sign
// in as the configured console identity.

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/ratelimit"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Identity is who an unknown email signs in as.
type Identity struct {
	Name string
	Role string
}

type Handler struct {
	Users      *memstore.Collection[models.User]
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Flash      *flash.Flasher
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
	Console    Identity
}

func NewHandler(
	users *memstore.Collection[models.User],
	sm *auth.SessionManager,
	limiter *ratelimit.LoginLimiter,
	flasher *flash.Flasher,
	errLog *uierrors.ErrorLogger,
	console Identity,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sm,
		Limiter:    limiter,
		Flash:      flasher,
		ErrLog:     errLog,
		Log:        logger,
		Console:    console,
	}
}

type loginInput struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required" label:"Password"`
}

type forgotInput struct {
	Email string `validate:"required,email" label:"Email"`
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

type forgotFormData struct {
	viewdata.BaseVM
	Error string
	Email string
	Sent  bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	ret := r.FormValue("return")

	if ok, reason := h.Limiter.Check(r, in.Email); !ok {
		h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)), zap.String("email", in.Email))
		w.WriteHeader(http.StatusTooManyRequests)
		h.renderLogin(w, r, reason, in.Email, ret)
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderLogin(w, r, res.First(), in.Email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.identify(ctx, in.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A server error occurred.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to sign you in.", "/login")
		return
	}
	h.Limiter.ResetEmail(in.Email)
	h.Log.Info("signed in", zap.String("login_id", u.LoginID), zap.String("role", u.Role))
	h.Flash.Success(w, r, "Welcome back, "+u.Name+"!")

	dest := urlutil.SafeReturn(ret, "", "/dashboard")
	if dest == "" || strings.HasPrefix(dest, "/login") {
		dest = "/dashboard"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// identify finds the display identity for email.
func (h *Handler) identify(ctx context.Context, email string) (*auth.SessionUser, error) {
	fe := text.Fold(email)
	rows, err := h.Users.Find(ctx, func(u models.User) bool { return text.Fold(u.Email) == fe })
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		u := rows[0]
		return &auth.SessionUser{
			ID:      strconv.FormatInt(u.ID, 10),
			Name:    u.Name,
			LoginID: u.Email,
			Role:    u.Role,
		}, nil
	}
	return &auth.SessionUser{
		ID:      "console",
		Name:    h.Console.Name,
		LoginID: email,
		Role:    h.Console.Role,
	}, nil
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /forgot-password                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForgot(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "forgot_password", forgotFormData{
		BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
		Sent:   query.Get(r, "sent") == "1",
	})
}

// HandleForgotPost validates the address and pretends to send a reset link.
func (h *Handler) HandleForgotPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/forgot-password")
		return
	}
	in := forgotInput{Email: strings.TrimSpace(r.FormValue("email"))}

	data := forgotFormData{
		BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
		Email:  in.Email,
	}
	if ok, reason := h.Limiter.Check(r, in.Email); !ok {
		w.WriteHeader(http.StatusTooManyRequests)
		data.Error = reason
		templates.Render(w, r, "forgot_password", data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.Error = res.First()
		templates.Render(w, r, "forgot_password", data)
		return
	}

	h.Log.Info("password reset requested", zap.String("email", in.Email))
	h.Flash.Success(w, r, "Password reset link sent to your email!")
	http.Redirect(w, r, "/forgot-password?sent=1", http.StatusSeeOther)
}
