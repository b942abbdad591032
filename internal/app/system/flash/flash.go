// Package flash carries toast notifications across the post/redirect/get
// cycle. Messages are queued in the session on a mutation and popped on the
// next full-page GET.
package flash

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"go.uber.org/zap"
)

// Kinds map to toast colours in the layout.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

// Message is one toast.
type Message struct {
	Kind string
	Text string
}

func init() {
	gob.Register(Message{})
}

type ctxKey struct{}

// Flasher writes and reads toasts through the session manager. A nil
// Flasher drops every message, which keeps handler tests free of sessions.
type Flasher struct {
	sm  *auth.SessionManager
	log *zap.Logger
}

// New returns a Flasher backed by sm.
func New(sm *auth.SessionManager, logger *zap.Logger) *Flasher {
	return &Flasher{sm: sm, log: logger}
}

// Add queues a toast for the next page.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, kind, text string) {
	if f == nil || f.sm == nil {
		return
	}
	if err := f.sm.AddFlash(w, r, Message{Kind: kind, Text: text}); err != nil {
		f.log.Warn("flash not saved", zap.String("text", text), zap.Error(err))
	}
}

// Success queues a success toast.
func (f *Flasher) Success(w http.ResponseWriter, r *http.Request, text string) {
	f.Add(w, r, KindSuccess, text)
}

// Error queues an error toast.
func (f *Flasher) Error(w http.ResponseWriter, r *http.Request, text string) {
	f.Add(w, r, KindError, text)
}

// Middleware pops queued toasts on full-page GETs and exposes them through
// FromRequest. HTMX requests leave the queue alone so a modal opening does
// not swallow the toast meant for the page behind it.
func (f *Flasher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f == nil || f.sm == nil || r.Method != http.MethodGet || r.Header.Get("HX-Request") == "true" {
			next.ServeHTTP(w, r)
			return
		}
		vals, err := f.sm.Flashes(w, r)
		if err != nil {
			f.log.Warn("flash pop failed", zap.Error(err))
		}
		var msgs []Message
		for _, v := range vals {
			if m, ok := v.(Message); ok {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) > 0 {
			r = WithMessages(r, msgs)
		}
		next.ServeHTTP(w, r)
	})
}

// FromRequest returns the toasts popped for this request.
func FromRequest(r *http.Request) []Message {
	msgs, _ := r.Context().Value(ctxKey{}).([]Message)
	return msgs
}

// WithMessages attaches msgs to the request context.
func WithMessages(r *http.Request, msgs []Message) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, msgs))
}
