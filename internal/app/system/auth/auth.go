// Package auth keeps the console's simulated sign-in state in a gorilla
// cookie session. There are no passwords to verify here; the session only
// carries the display identity chosen at login and a per-browser ID used to
// key in-memory preferences.
package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	userIDKey   = "user_id"
	userNameKey = "user_name"
	loginIDKey  = "login_id"
	userRoleKey = "user_role"
	browserKey  = "browser_id"
)

// SessionUser is the identity stored in the session and injected into the
// request context by LoadSessionUser.
type SessionUser struct {
	ID      string
	Name    string
	LoginID string
	Role    string
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	browserIDKey   ctxKey = "browserID"
)

// SessionManager owns the cookie store. Create one per process with
// NewSessionManager and share it with the features that sign in, sign out or
// write flash messages.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. An empty key is rejected; short
// keys are accepted with a warning so local runs stay easy.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide at least 32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "churchadmin-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// GenerateKey returns a random hex key for dev runs that did not configure
// session_key. Sessions will not survive a restart with a generated key.
func GenerateKey() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

// GetSession returns the request's session. A cookie that no longer decodes
// (rotated key, tampering) yields a fresh session and the decode error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// session wraps GetSession with the logging every caller wants.
func (sm *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := sm.GetSession(r)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.log.Debug("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			sm.log.Warn("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

// LoadSessionUser puts the signed-in user (if any) and the browser ID into the
// request context. A browser without an ID gets one on its first request.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sm.session(r)

		bid := getString(sess, browserKey)
		if bid == "" {
			bid = uuid.NewString()
			sess.Values[browserKey] = bid
			if err := sess.Save(r, w); err != nil {
				sm.log.Warn("could not save browser id", zap.Error(err))
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), browserIDKey, bid))

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			r = withUser(r, &SessionUser{
				ID:      getString(sess, userIDKey),
				Name:    getString(sess, userNameKey),
				LoginID: getString(sess, loginIDKey),
				Role:    getString(sess, userRoleKey),
			})
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn records u as the session identity.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess := sm.session(r)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[loginIDKey] = u.LoginID
	sess.Values[userRoleKey] = u.Role
	return sess.Save(r, w)
}

// SignOut drops the identity but keeps the browser ID, so preferences such as
// the collapsed sidebar survive a logout.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := sm.session(r)
	for _, k := range []string{isAuthKey, userIDKey, userNameKey, loginIDKey, userRoleKey} {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// AddFlash queues a value for the next page render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, value any) error {
	sess := sm.session(r)
	sess.AddFlash(value)
	return sess.Save(r, w)
}

// Flashes pops every queued flash value.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) ([]any, error) {
	sess := sm.session(r)
	vals := sess.Flashes()
	if len(vals) == 0 {
		return nil, nil
	}
	return vals, sess.Save(r, w)
}

// CurrentUser returns the user placed in context by LoadSessionUser.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// BrowserID returns the per-browser ID, or "" outside LoadSessionUser.
func BrowserID(r *http.Request) string {
	id, _ := r.Context().Value(browserIDKey).(string)
	return id
}

// WithTestUser injects u the way LoadSessionUser would.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// WithTestBrowser injects a browser ID the way LoadSessionUser would.
func WithTestBrowser(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), browserIDKey, id))
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
