// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	userstore "github.com/ohenegyan12/church-management/internal/app/store/users"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the users & roles page. User modals come from Crud.
type Handler struct {
	Set   *collections.Set
	Store *userstore.Store
	Crud  *crud.Handler[models.User]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	store := userstore.New(set)
	return &Handler{
		Set:    set,
		Store:  store,
		Crud:   crud.NewHandler(Resource(set, store, logger), errLog, flasher, logger),
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

type userRow struct {
	ID         int64
	Name       string
	Initials   string
	Email      string
	Role       string
	Super      bool
	LastActive string
	Status     string
}

type pageData struct {
	viewdata.BaseVM
	Stats     []crud.Stat
	Users     []userRow
	Roles     []models.Role
	ReturnURL string
}

// ServeUsers lists users and the role cards.
//
// Route: GET /users
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := h.Set.Users.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err, "Unable to load users.", "/dashboard")
		return
	}
	roles, err := h.Set.Roles.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list roles failed", err, "Unable to load roles.", "/dashboard")
		return
	}

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Users & Roles", "/dashboard"),
		Roles:     roles,
		ReturnURL: httpnav.CurrentPath(r),
	}
	data.Subtitle = "Manage system users and their access permissions"

	active := 0
	for _, u := range users {
		if u.Status == models.StatusActive {
			active++
		}
		data.Users = append(data.Users, userRow{
			ID:         u.ID,
			Name:       u.Name,
			Initials:   viewdata.Initials(u.Name),
			Email:      u.Email,
			Role:       u.Role,
			Super:      u.Role == "Super Admin",
			LastActive: u.LastActive,
			Status:     u.Status,
		})
	}
	data.Stats = []crud.Stat{
		{Label: "Total Users", Value: shared.Count(len(users))},
		{Label: "Active Users", Value: shared.Count(active), Tone: "ok"},
		{Label: "Inactive", Value: shared.Count(len(users) - active), Tone: "warn"},
		{Label: "Roles", Value: shared.Count(len(roles))},
	}

	templates.Render(w, r, "users_page", data)
}

type roleInput struct {
	Name string `validate:"required,max=100" label:"Role Name"`
}

type roleData struct {
	formutil.Base
	roleInput
	Options  []string
	Selected map[string]bool
}

// ServeAddRole renders the add-role modal.
//
// Route: GET /users/roles/new
func (h *Handler) ServeAddRole(w http.ResponseWriter, r *http.Request) {
	h.renderRole(w, r, roleInput{}, nil, "")
}

// HandleAddRole creates a role from the posted name and permission boxes.
//
// Route: POST /users/roles
func (h *Handler) HandleAddRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}
	in := roleInput{Name: strings.TrimSpace(r.PostFormValue("name"))}
	perms := r.PostForm["permissions"]
	if res := inputval.Validate(in); res.HasErrors() {
		h.renderRole(w, r, in, perms, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, err := h.Store.AddRole(ctx, in.Name, perms)
	if errors.Is(err, userstore.ErrDuplicateRole) {
		h.renderRole(w, r, in, perms, "A role with that name already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add role failed", err, "Unable to add the role.", Base)
		return
	}

	metrics.Mutation(h.Set.Roles.Name(), "created")
	h.Log.Info("role added", zap.String("role", role.Name), zap.String("permissions", role.Permissions))
	h.Flash.Success(w, r, role.Name+" role has been created successfully.")
	formutil.Redirect(w, r, Base)
}

func (h *Handler) renderRole(w http.ResponseWriter, r *http.Request, in roleInput, perms []string, errMsg string) {
	data := roleData{
		roleInput: in,
		Options:   userstore.PermissionOptions,
		Selected:  make(map[string]bool, len(perms)),
	}
	for _, p := range perms {
		data.Selected[p] = true
	}
	formutil.SetBase(&data.Base, r, "Add New Role", Base)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	formutil.Render(w, r, "role_new", data)
}
