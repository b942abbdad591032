package bulksms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ohenegyan12/church-management/internal/app/features/bulksms"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*bulksms.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return bulksms.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), set
}

func TestSegments(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"", 0},
		{"Hello", 1},
		{strings.Repeat("a", 160), 1},
		{strings.Repeat("a", 161), 2},
		{strings.Repeat("₵", 320), 2},
	}
	for _, tt := range tests {
		if got := bulksms.Segments(tt.msg); got != tt.want {
			t.Errorf("Segments(len %d) = %d, want %d", len(tt.msg), got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Meeting Reminder":     "meeting-reminder",
		"  Weekly -- Notice! ": "weekly-notice",
		"Men's Fellowship":     "men-s-fellowship",
		"!!!":                  "",
	}
	for in, want := range tests {
		if got := bulksms.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSend_RecordsHistory(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{
		"recipients": {"Youth Fellowship"},
		"message":    {"<b>Youth rally</b> on Saturday at 4 PM."},
	}
	rec := httptest.NewRecorder()
	h.HandleSend(rec, testutil.NewFormRequest(bulksms.Base+"/send", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != bulksms.Base {
		t.Errorf("Location = %q", loc)
	}

	sent, _ := set.SMSMessages.List(context.Background())
	if len(sent) != 1 {
		t.Fatalf("got %d messages, want 1", len(sent))
	}
	m := sent[0]
	if _, err := uuid.Parse(m.BatchID); err != nil {
		t.Errorf("BatchID %q is not a uuid: %v", m.BatchID, err)
	}
	if m.Message != "Youth rally on Saturday at 4 PM." {
		t.Errorf("Message = %q", m.Message)
	}
	if m.Status != models.StatusSent || !m.SentAt.Equal(testutil.Now) {
		t.Errorf("Status/SentAt = %q/%v", m.Status, m.SentAt)
	}
}

func TestSend_Invalid(t *testing.T) {
	h, set := newTestHandler(t)

	cases := []url.Values{
		{"recipients": {""}, "message": {"Hello"}},
		{"recipients": {"All Members"}, "message": {""}},
		{"recipients": {"Everyone Everywhere"}, "message": {"Hello"}},
		{"recipients": {"All Members"}, "message": {strings.Repeat("x", 919)}},
	}
	for _, form := range cases {
		rec := httptest.NewRecorder()
		h.HandleSend(rec, testutil.NewFormRequest(bulksms.Base+"/send", form))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("form %v: status = %d, want 422", form, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `<p class="form-error">`) {
			t.Errorf("form %v: error not shown", form)
		}
	}
	if n, _ := set.SMSMessages.Count(context.Background()); n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestServeSMS_LoadsTemplate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeSMS(rec, httptest.NewRequest(http.MethodGet, bulksms.Base+"?template=meeting-reminder&to=Youth+Fellowship", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Loaded template: Meeting Reminder",
		">Dear Member, this is a reminder for the upcoming meeting on Sunday at 10 AM. Please be on time.</textarea>",
		`<option value="Youth Fellowship" selected>`,
		`href="/administration/bulk-sms?template=donation-thank-you"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeSMS_Tabs(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeSMS(rec, httptest.NewRequest(http.MethodGet, bulksms.Base+"?tab=templates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("templates: status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "+ New Template") || !strings.Contains(body, `href="/administration/bulk-sms/templates/3/edit?return=`) {
		t.Error("templates tab should list editable templates")
	}
	if strings.Contains(body, "Send Message") {
		t.Error("templates tab should not show the compose form")
	}

	send := httptest.NewRecorder()
	h.HandleSend(send, testutil.NewFormRequest(bulksms.Base+"/send", url.Values{
		"recipients": {"Youth Fellowship"},
		"message":    {"Youth rally on Saturday."},
	}))
	if send.Code != http.StatusSeeOther {
		t.Fatalf("send: status = %d, want 303", send.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeSMS(rec, httptest.NewRequest(http.MethodGet, bulksms.Base+"?tab=history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history: status = %d, want 200", rec.Code)
	}
	body = rec.Body.String()
	if !strings.Contains(body, "<td>Youth rally on Saturday.</td>") {
		t.Errorf("history should list the sent message:\n%s", body)
	}
	if strings.Contains(body, "No message history available yet") {
		t.Error("history should not be empty")
	}
}

func TestServeSMS_UnknownTemplate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeSMS(rec, httptest.NewRequest(http.MethodGet, bulksms.Base+"?template=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateTemplate_Slug(t *testing.T) {
	h, set := newTestHandler(t)

	create := func(name string) {
		form := url.Values{"name": {name}, "content": {"Body for " + name}}
		rec := httptest.NewRecorder()
		h.Templates.HandleCreate(rec, testutil.NewFormRequest(bulksms.TemplatesBase, form))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("create %q: status = %d, want 303", name, rec.Code)
		}
	}
	create("Weekly Reminder")
	create("Meeting Reminder")

	byName := func(name string) []models.SMSTemplate {
		rows, _ := set.SMSTemplates.Find(context.Background(), func(t models.SMSTemplate) bool { return t.Name == name })
		return rows
	}
	if rows := byName("Weekly Reminder"); len(rows) != 1 || rows[0].Slug != "weekly-reminder" {
		t.Errorf("unexpected weekly template: %+v", rows)
	}
	rows := byName("Meeting Reminder")
	if len(rows) != 2 {
		t.Fatalf("got %d meeting reminders, want 2", len(rows))
	}
	if rows[1].Slug == rows[0].Slug || !strings.HasPrefix(rows[1].Slug, "meeting-reminder-") {
		t.Errorf("duplicate name should get a suffixed slug, got %q and %q", rows[0].Slug, rows[1].Slug)
	}
}

func TestEditTemplate_KeepsSlug(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{"name": {"Sunday Reminder"}, "content": {"See you on Sunday."}}
	req := testutil.WithChiURLParam(testutil.NewFormRequest(bulksms.TemplatesBase+"/1/edit", form), "id", "1")
	rec := httptest.NewRecorder()
	h.Templates.HandleEdit(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	got, _ := set.SMSTemplates.Get(context.Background(), 1)
	if got.Name != "Sunday Reminder" || got.Slug != "meeting-reminder" {
		t.Errorf("got %+v", got)
	}
}
