// internal/app/features/settings/handler.go
package settings

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/settings"

// Providers are the mobile money networks payouts can go to.
var Providers = []string{"MTN Mobile Money", "Vodafone Cash", "AirtelTigo Money"}

// Handler owns the settings page and its four forms.
type Handler struct {
	Set   *collections.Set
	Store *settingsstore.Store

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:    set,
		Store:  settingsstore.New(set.Settings),
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

type orgInput struct {
	OrgName    string `validate:"required,max=200" label:"Organization Name"`
	OrgAddress string `validate:"max=300" label:"Head Office Address"`
	OrgPhone   string `validate:"omitempty,phone" label:"Phone Number"`
	OrgEmail   string `validate:"omitempty,email" label:"Email Address"`
	OrgWebsite string `validate:"max=200" label:"Website"`
	RegNumber  string `validate:"max=50" label:"Registration Number"`
}

type mobileInput struct {
	Provider    string `validate:"required" label:"Provider"`
	AccountName string `validate:"required,max=200" label:"Account Name"`
	PhoneNumber string `validate:"required,phone" label:"Phone Number"`
}

type bankInput struct {
	BankName      string `validate:"required,max=200" label:"Bank Name"`
	AccountName   string `validate:"required,max=200" label:"Account Name"`
	AccountNumber string `validate:"required,numeric,min=6,max=20" label:"Account Number"`
	BranchName    string `validate:"max=200" label:"Branch Name"`
	SwiftCode     string `validate:"omitempty,alphanum,min=8,max=11" label:"SWIFT Code"`
}

// Section errors are shown beside the form that failed.
type pageData struct {
	viewdata.BaseVM
	Org       orgInput
	Mobile    mobileInput
	Bank      bankInput
	Providers []string
	Section   string
	Error     string
}

// ServeSettings renders all four forms filled from the stored settings.
//
// Route: GET /settings
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Store.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Failed to load settings.", "/dashboard")
		return
	}
	h.render(w, r, h.page(r, st), "", "")
}

func (h *Handler) page(r *http.Request, st models.Settings) pageData {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Settings", "/dashboard"),
		Org: orgInput{
			OrgName:    st.OrgName,
			OrgAddress: st.OrgAddress,
			OrgPhone:   st.OrgPhone,
			OrgEmail:   st.OrgEmail,
			OrgWebsite: st.OrgWebsite,
			RegNumber:  st.RegNumber,
		},
		Mobile:    mobileInput(st.MobileMoney),
		Bank:      bankInput(st.Bank),
		Providers: Providers,
	}
	data.Subtitle = "Manage system configuration and preferences"
	return data
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData, section, errMsg string) {
	data.Section, data.Error = section, errMsg
	if errMsg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "settings_page", data)
}

// save loads the settings, applies mutate and stores the result. On a
// validation failure the page is re-rendered with the posted values.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, section string, in any, apply func(*models.Settings), fill func(*pageData), toast string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Store.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Failed to load settings.", Base)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data := h.page(r, st)
		fill(&data)
		h.render(w, r, data, section, res.First())
		return
	}

	apply(&st)
	if _, err := h.Store.Save(ctx, st); err != nil {
		h.ErrLog.LogServerError(w, r, "save settings failed", err, "Failed to save settings.", Base)
		return
	}
	metrics.Mutation(h.Set.Settings.Name(), section)
	h.Log.Info("settings saved", zap.String("section", section))
	h.Flash.Success(w, r, toast)
	formutil.Redirect(w, r, Base)
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// HandleOrganization saves the organization details.
//
// Route: POST /settings/organization
func (h *Handler) HandleOrganization(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}
	in := orgInput{
		OrgName:    field(r, "org_name"),
		OrgAddress: field(r, "org_address"),
		OrgPhone:   field(r, "org_phone"),
		OrgEmail:   field(r, "org_email"),
		OrgWebsite: field(r, "org_website"),
		RegNumber:  field(r, "reg_number"),
	}
	h.save(w, r, "organization", in,
		func(st *models.Settings) {
			st.OrgName, st.OrgAddress, st.OrgPhone = in.OrgName, in.OrgAddress, in.OrgPhone
			st.OrgEmail, st.OrgWebsite, st.RegNumber = in.OrgEmail, in.OrgWebsite, in.RegNumber
		},
		func(d *pageData) { d.Org = in },
		"Organization details have been updated.")
}

// HandleMobileMoney saves the mobile money payout account.
//
// Route: POST /settings/mobile-money
func (h *Handler) HandleMobileMoney(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}
	in := mobileInput{
		Provider:    field(r, "provider"),
		AccountName: field(r, "account_name"),
		PhoneNumber: field(r, "phone_number"),
	}
	if in.Provider != "" && !slices.Contains(Providers, in.Provider) {
		in.Provider = ""
	}
	h.save(w, r, "mobile-money", in,
		func(st *models.Settings) { st.MobileMoney = models.MobileMoney(in) },
		func(d *pageData) { d.Mobile = in },
		"Mobile money details have been updated.")
}

// HandleBank saves the bank payout account.
//
// Route: POST /settings/bank
func (h *Handler) HandleBank(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}
	in := bankInput{
		BankName:      field(r, "bank_name"),
		AccountName:   field(r, "account_name"),
		AccountNumber: strings.ReplaceAll(field(r, "account_number"), " ", ""),
		BranchName:    field(r, "branch_name"),
		SwiftCode:     strings.ToUpper(field(r, "swift_code")),
	}
	h.save(w, r, "bank", in,
		func(st *models.Settings) { st.Bank = models.BankAccount(in) },
		func(d *pageData) { d.Bank = in },
		"Bank account details have been updated.")
}

// HandlePassword changes the console password. The current password must
// match and the new one must be confirmed and at least eight characters.
//
// Route: POST /settings/password
func (h *Handler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.ChangePassword(ctx,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"))
	var msg string
	switch {
	case err == nil:
		metrics.Mutation(h.Set.Settings.Name(), "password")
		h.Log.Info("console password changed")
		h.Flash.Success(w, r, "Your password has been changed successfully.")
		formutil.Redirect(w, r, Base)
		return
	case errors.Is(err, settingsstore.ErrPasswordMismatch):
		msg = "New passwords do not match."
	case errors.Is(err, settingsstore.ErrPasswordTooShort):
		msg = "New password must be at least 8 characters."
	case errors.Is(err, settingsstore.ErrWrongPassword):
		h.Log.Warn("password change refused", zap.Error(err))
		msg = "Current password is incorrect."
	default:
		h.ErrLog.LogServerError(w, r, "change password failed", err, "Failed to change the password.", Base)
		return
	}

	st, err := h.Store.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Failed to load settings.", Base)
		return
	}
	h.render(w, r, h.page(r, st), "password", msg)
}

