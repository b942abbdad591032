// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/authz"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/navigation"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// BaseVM carries the layout chrome shared by every page: sidebar, header,
// toasts and the identity shown in the user panel.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    Rows []row
//	}
//
//	data := listData{BaseVM: viewdata.NewBaseVM(r, "Conferences", "/dashboard")}
type BaseVM struct {
	SiteName string

	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string
	Initials   string

	Title       string
	Subtitle    string
	BackURL     string
	CurrentPath string

	CSRFToken string

	Nav              []navigation.Node
	SidebarCollapsed bool
	UnreadCount      int
	Flashes          []flash.Message
}

// Loaders are set once by bootstrap so this package does not import the stores.
type (
	SiteNameLoader  func(ctx context.Context) string
	UnreadLoader    func(ctx context.Context) int
	CollapsedLoader func(ctx context.Context, browserID string) bool
)

var (
	siteNameLoader  SiteNameLoader
	unreadLoader    UnreadLoader
	collapsedLoader CollapsedLoader
)

// SetSiteNameLoader sets the function that supplies the organization name.
func SetSiteNameLoader(fn SiteNameLoader) { siteNameLoader = fn }

// SetUnreadLoader sets the function that counts unread notifications.
func SetUnreadLoader(fn UnreadLoader) { unreadLoader = fn }

// SetCollapsedLoader sets the function that reads the sidebar preference.
func SetCollapsedLoader(fn CollapsedLoader) { collapsedLoader = fn }

// NewBaseVM fills the chrome for one page render.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, signedIn := authz.UserCtx(r)
	path := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		IsAdmin:     authz.HasAnyRole(r, "Super Admin", "Admin"),
		Role:        role,
		UserName:    name,
		Initials:    Initials(name),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: path,
		CSRFToken:   csrf.Token(r),
		Nav:         navigation.Build(navigation.Sidebar, path),
		Flashes:     flash.FromRequest(r),
	}

	ctx := r.Context()
	if siteNameLoader != nil {
		if s := siteNameLoader(ctx); s != "" {
			vm.SiteName = s
		}
	}
	if unreadLoader != nil {
		vm.UnreadCount = unreadLoader(ctx)
	}
	if collapsedLoader != nil {
		if bid := auth.BrowserID(r); bid != "" {
			vm.SidebarCollapsed = collapsedLoader(ctx, bid)
		}
	}
	return vm
}

// Initials returns up to two upper-case initials for the avatar ("John Doe" -> "JD").
func Initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
