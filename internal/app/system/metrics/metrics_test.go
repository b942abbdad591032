package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/members/clergy/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/members/clergy/999", nil))

	want := `http_requests_total{method="GET",path="/members/clergy/{id}",status="404"} 1`
	if body := scrape(t); !strings.Contains(body, want) {
		t.Errorf("missing %s in:\n%s", want, body)
	}
}

func TestMutation(t *testing.T) {
	metrics.Mutation("test_conferences", "create")
	metrics.Mutation("test_conferences", "create")

	want := `churchadmin_mutations_total{action="create",collection="test_conferences"} 2`
	if body := scrape(t); !strings.Contains(body, want) {
		t.Errorf("missing %s", want)
	}
}

func TestHandler_ExposesStoreSizes(t *testing.T) {
	metrics.RegisterStoreSizes(func() map[string]int { return map[string]int{"events": 6} })

	if body := scrape(t); !strings.Contains(body, `churchadmin_records{collection="events"} 6`) {
		t.Errorf("store sizes not exported:\n%s", body)
	}
}
