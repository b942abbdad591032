package gates_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/system/gates"
)

func TestConfirmed(t *testing.T) {
	tests := []struct {
		typed string
		want  bool
	}{
		{"delete", true},
		{"DELETE", true},
		{"Delete", true},
		{"dElEtE", true},
		{"", false},
		{"del", false},
		{"delete ", false},
		{" delete", false},
		{"deleted", false},
		{"remove", false},
	}
	for _, tt := range tests {
		t.Run(tt.typed, func(t *testing.T) {
			if got := gates.Confirmed(tt.typed); got != tt.want {
				t.Errorf("Confirmed(%q) = %v, want %v", tt.typed, got, tt.want)
			}
		})
	}
}

func TestDeleteConfirmed(t *testing.T) {
	form := url.Values{gates.ConfirmField: {"DELETE"}}
	req := httptest.NewRequest("POST", "/events/3/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if !gates.DeleteConfirmed(req) {
		t.Error("expected DELETE to pass")
	}

	req = httptest.NewRequest("POST", "/events/3/delete", nil)
	if gates.DeleteConfirmed(req) {
		t.Error("missing field must not pass")
	}
}
