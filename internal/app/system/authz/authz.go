// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
)

// UserCtx returns the signed-in user's display role and name. Without a user
// in context it returns "visitor", "", false.
func UserCtx(r *http.Request) (role string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", false
	}
	return user.Role, user.Name, true
}

// HasAnyRole reports whether the current user's role matches one of roles,
// ignoring case.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if strings.EqualFold(role, strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
