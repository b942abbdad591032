// internal/app/store/prefs/prefsstore.go
package prefsstore

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// ErrNoBrowser is returned when a preference write has no browser key.
var ErrNoBrowser = errors.New("prefs: browser id required")

// DefaultMaxEntries bounds how many browsers New remembers.
const DefaultMaxEntries = 10000

// Store keeps per-browser UI preferences in process memory. Nothing here
// survives a restart. Once full, a write for a new browser drops the least
// recently written one, which then reads back as defaults.
type Store struct {
	mu    sync.RWMutex
	max   int
	data  map[string]*list.Element
	order *list.List // front is most recently written; values are models.Preferences
}

// New creates an empty preference store holding up to DefaultMaxEntries
// browsers.
func New() *Store { return NewWithLimit(DefaultMaxEntries) }

// NewWithLimit creates an empty store holding up to limit browsers. A limit
// below 1 is treated as 1.
func NewWithLimit(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{max: limit, data: make(map[string]*list.Element), order: list.New()}
}

// Get returns stored preferences or defaults (sidebar expanded).
func (s *Store) Get(_ context.Context, browserID string) models.Preferences {
	if browserID == "" {
		return models.Preferences{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if el, ok := s.data[browserID]; ok {
		return el.Value.(models.Preferences)
	}
	return models.Preferences{BrowserID: browserID}
}

// ToggleSidebar flips the collapsed flag for the browser and returns the new
// value.
func (s *Store) ToggleSidebar(_ context.Context, browserID string) (bool, error) {
	if browserID == "" {
		return false, ErrNoBrowser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.loadLocked(browserID)
	p.SidebarCollapsed = !p.SidebarCollapsed
	s.storeLocked(p)
	return p.SidebarCollapsed, nil
}

// SetSidebar stores an explicit collapsed value.
func (s *Store) SetSidebar(_ context.Context, browserID string, collapsed bool) error {
	if browserID == "" {
		return ErrNoBrowser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.loadLocked(browserID)
	p.SidebarCollapsed = collapsed
	s.storeLocked(p)
	return nil
}

// Len reports how many browsers have stored preferences.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) loadLocked(browserID string) models.Preferences {
	if el, ok := s.data[browserID]; ok {
		return el.Value.(models.Preferences)
	}
	return models.Preferences{BrowserID: browserID}
}

func (s *Store) storeLocked(p models.Preferences) {
	if el, ok := s.data[p.BrowserID]; ok {
		el.Value = p
		s.order.MoveToFront(el)
		return
	}
	for s.order.Len() >= s.max {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.data, oldest.Value.(models.Preferences).BrowserID)
	}
	s.data[p.BrowserID] = s.order.PushFront(p)
}
