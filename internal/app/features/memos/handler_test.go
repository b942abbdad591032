package memos_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/memos"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*memos.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set := testutil.NewSet(t)
	logger := zap.NewNop()
	return memos.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), set
}

func composeForm(action string) url.Values {
	return url.Values{
		"subject":  {"Synod Agenda"},
		"to":       {"All Conferences"},
		"priority": {"high"},
		"body":     {`<p>See attached.</p><script>alert(1)</script>`},
		"action":   {action},
	}
}

func TestCompose_Send(t *testing.T) {
	h, set := newTestHandler(t)

	req := testutil.WithUser(testutil.NewFormRequest(memos.Base, composeForm("send")), testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleCompose(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	rows, _ := set.Memos.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("got %d memos, want 1", len(rows))
	}
	m := rows[0]
	if m.Status != models.StatusSent {
		t.Errorf("Status = %q, want sent", m.Status)
	}
	if m.From != testutil.AdminUser().Name {
		t.Errorf("From = %q", m.From)
	}
	if strings.Contains(m.Body, "<script") {
		t.Errorf("body was not sanitized: %q", m.Body)
	}
	if !m.Date.Equal(testutil.Now) {
		t.Errorf("Date = %v", m.Date)
	}
}

func TestCompose_Draft(t *testing.T) {
	h, set := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleCompose(rec, testutil.NewFormRequest(memos.Base, composeForm("draft")))

	rows, _ := set.Memos.List(context.Background())
	if len(rows) != 1 || rows[0].Status != models.StatusDraft {
		t.Fatalf("unexpected memos: %+v", rows)
	}
	if rows[0].From != "Head Office" {
		t.Errorf("From = %q, want Head Office", rows[0].From)
	}
}

func TestCompose_Validation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing subject", "subject", ""},
		{"unknown recipients", "to", "Everyone Everywhere"},
		{"bad priority", "priority", "urgent"},
		{"empty body", "body", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, set := newTestHandler(t)
			form := composeForm("send")
			form.Set(tt.field, tt.value)

			rec := httptest.NewRecorder()
			h.HandleCompose(rec, testutil.NewFormRequest(memos.Base, form))

			if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="form-error"`) {
				t.Errorf("status = %d, want the compose modal with an error", rec.Code)
			}
			if n, _ := set.Memos.Count(context.Background()); n != 0 {
				t.Errorf("memo saved despite %s", tt.name)
			}
		})
	}
}

func TestSendDraft(t *testing.T) {
	h, set := newTestHandler(t)
	draft := testutil.NewFixtures(t, set).CreateMemo("Budget Draft", models.StatusDraft)

	id := strconv.FormatInt(draft.ID, 10)
	req := testutil.WithChiURLParam(testutil.NewFormRequest(memos.Base+"/"+id+"/send", url.Values{}), "id", id)
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}

	got, _ := set.Memos.Get(context.Background(), draft.ID)
	if got.Status != models.StatusSent {
		t.Errorf("Status = %q, want sent", got.Status)
	}

	// Sending again leaves it alone and redirects with an error toast.
	rec = httptest.NewRecorder()
	h.HandleSend(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d on resend", rec.Code)
	}
}

func TestServeMemo_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", memos.Base+"/42", nil), "id", "42")
	rec := httptest.NewRecorder()
	h.ServeMemo(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteMemo_Gate(t *testing.T) {
	h, set := newTestHandler(t)
	m := testutil.NewFixtures(t, set).CreateMemo("Old Notice", models.StatusSent)

	id := strconv.FormatInt(m.ID, 10)
	req := testutil.WithChiURLParam(testutil.NewFormRequest(memos.Base+"/"+id+"/delete", url.Values{"confirm": {"nope"}}), "id", id)
	rec := httptest.NewRecorder()
	h.Crud.HandleDelete(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Type delete to confirm.") {
		t.Errorf("status = %d, want the delete modal with the confirm hint", rec.Code)
	}
	if _, err := set.Memos.Get(context.Background(), m.ID); err != nil {
		t.Fatal("memo deleted without the confirm word")
	}

	req = testutil.WithChiURLParam(testutil.NewFormRequest(memos.Base+"/"+id+"/delete", url.Values{"confirm": {"DELETE"}}), "id", id)
	rec = httptest.NewRecorder()
	h.Crud.HandleDelete(rec, req)
	if n, _ := set.Memos.Count(context.Background()); n != 0 {
		t.Error("memo not deleted")
	}
}

func TestServeMemo_SanitizedBody(t *testing.T) {
	h, set := newTestHandler(t)
	ctx := context.Background()
	m, err := set.Memos.Insert(ctx, models.Memo{
		Subject: "Synod Agenda", From: "General Secretary", To: "All Conferences",
		Date: testutil.Now, Priority: "high", Status: models.StatusSent,
		Body: `<p>Agenda <strong>attached</strong></p><img src=x onerror="alert(1)">`,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id := strconv.FormatInt(m.ID, 10)

	rec := testutil.NewRecorder()
	h.ServeMemo(rec, testutil.HTMX(testutil.WithChiURLParam(httptest.NewRequest("GET", memos.Base+"/"+id, nil), "id", id)))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "<strong>attached</strong>")
	if strings.Contains(rec.Body.String(), "onerror") {
		t.Error("memo body rendered an event handler")
	}
}

func TestServeList_Filters(t *testing.T) {
	h, set := newTestHandler(t)
	fx := testutil.NewFixtures(t, set)
	fx.CreateMemo("Budget Draft", models.StatusDraft)
	fx.CreateMemo("Synod Notice", models.StatusSent)

	req := testutil.HTMX(httptest.NewRequest("GET", memos.Base+"?status=draft", nil))
	req.Header.Set("HX-Target", "memo-list")
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Budget Draft")
	if strings.Contains(rec.Body.String(), "Synod Notice") {
		t.Error("status filter let a sent memo through")
	}

	rec = testutil.NewRecorder()
	h.ServeCompose(rec, httptest.NewRequest("GET", memos.Base+"/new", nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Compose Memo")
	rec.AssertContains(t, `<option value="medium" selected>`)
}
