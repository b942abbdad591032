package home_test

import (
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/features/home"
	"github.com/ohenegyan12/church-management/internal/testutil"
)

func TestServeIndex(t *testing.T) {
	h := home.NewHandler()

	rec := testutil.NewRecorder()
	h.ServeIndex(rec, testutil.NewRequest("GET", "/"))
	rec.AssertRedirect(t, "/login")

	rec = testutil.NewRecorder()
	h.ServeIndex(rec, testutil.WithUser(testutil.NewRequest("GET", "/"), testutil.AdminUser()))
	rec.AssertRedirect(t, "/dashboard")
}
