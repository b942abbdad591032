// Package memstore is the process-local record store behind every page of the
// console. Collections live only in memory and are rebuilt from the seed
// fixture on each start.
//
// Each collection is guarded by its own RWMutex; readers receive copies so a
// handler can never mutate shared state except through Insert, Replace,
// Update and Delete.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// ErrNotFound is returned when no record with the requested ID exists.
var ErrNotFound = errors.New("memstore: record not found")

// ErrDuplicateID is returned when a record is inserted with an ID that is
// already in use.
var ErrDuplicateID = errors.New("memstore: duplicate id")

// Option configures a DB.
type Option func(*DB)

// WithClock replaces the wall clock used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// DB is a named set of collections.
type DB struct {
	mu   sync.Mutex
	cols map[string]namedCollection
	now  func() time.Time
}

type namedCollection interface {
	size() int
}

// New constructs an empty DB.
func New(opts ...Option) *DB {
	db := &DB{
		cols: make(map[string]namedCollection),
		now:  time.Now,
	}
	for _, o := range opts {
		o(db)
	}
	return db
}

// Now returns the DB clock reading in UTC.
func (db *DB) Now() time.Time { return db.now().UTC() }

// Names returns the registered collection names, sorted.
func (db *DB) Names() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]string, 0, len(db.cols))
	for n := range db.cols {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Sizes reports the record count of every collection.
func (db *DB) Sizes() map[string]int {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make(map[string]int, len(db.cols))
	for n, c := range db.cols {
		out[n] = c.size()
	}
	return out
}

// Ping reports whether the store can serve requests. It exists so the
// health endpoint has the same shape whatever the backend.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil {
		return errors.New("memstore: nil db")
	}
	return ctx.Err()
}

type metaPtr[T any] interface {
	*T
	Record() *models.Meta
}

// Register returns the collection called name, creating it on first use.
// Calling Register twice with the same name and type returns the same
// collection; a type mismatch panics because it is a programming error.
//
//	confs := memstore.Register[models.Conference](db, "conferences")
func Register[T any, P metaPtr[T]](db *DB, name string) *Collection[T] {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.cols[name]; ok {
		c, ok := existing.(*Collection[T])
		if !ok {
			panic(fmt.Sprintf("memstore: collection %q registered with a different type", name))
		}
		return c
	}

	c := &Collection[T]{
		label: name,
		meta:  func(t *T) *models.Meta { return P(t).Record() },
		now:   db.Now,
	}
	db.cols[name] = c
	return c
}

// Collection is an ordered set of records of one type. Records keep
// insertion order; new records are appended.
type Collection[T any] struct {
	mu     sync.RWMutex
	label  string
	rows   []T
	lastID int64
	meta   func(*T) *models.Meta
	now    func() time.Time
}

func (c *Collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.label }

// IDOf returns rec's ID.
func (c *Collection[T]) IDOf(rec *T) int64 { return c.meta(rec).ID }

// Now returns the collection clock reading.
func (c *Collection[T]) Now() time.Time { return c.now() }

// List returns a copy of every record in insertion order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.rows))
	copy(out, c.rows)
	return out, nil
}

// Find returns copies of the records for which keep reports true.
func (c *Collection[T]) Find(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, row := range c.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Count returns the number of records.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.size(), nil
}

// Get returns the record with the given ID or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return c.rows[i], nil
}

// Insert appends rec. A zero ID is replaced by the current time in Unix
// milliseconds, bumped past the last issued ID so IDs stay unique and
// increasing even when two inserts land in the same millisecond. A non-zero
// ID is kept as is (seed data) and must not collide.
func (c *Collection[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertLocked(rec)
}

// InsertWith is Insert with assign run under the write lock first, so a
// value derived from the other records (a running reference number) cannot
// be handed out twice. existing must not be modified or retained. An error
// from assign aborts the insert.
func (c *Collection[T]) InsertWith(ctx context.Context, rec T, assign func(existing []T, rec *T) error) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := assign(c.rows, &rec); err != nil {
		return zero, err
	}
	return c.insertLocked(rec)
}

func (c *Collection[T]) insertLocked(rec T) (T, error) {
	var zero T
	m := c.meta(&rec)
	now := c.now()
	if m.ID == 0 {
		id := now.UnixMilli()
		if id <= c.lastID {
			id = c.lastID + 1
		}
		m.ID = id
	} else if c.indexOf(m.ID) >= 0 {
		return zero, fmt.Errorf("%w: %s/%d", ErrDuplicateID, c.label, m.ID)
	}
	if m.ID > c.lastID {
		c.lastID = m.ID
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	c.rows = append(c.rows, rec)
	return rec, nil
}

// Replace swaps the stored record that has rec's ID for rec, keeping the
// original creation time.
func (c *Collection[T]) Replace(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.meta(&rec)
	i := c.indexOf(m.ID)
	if i < 0 {
		return zero, ErrNotFound
	}
	m.CreatedAt = c.meta(&c.rows[i]).CreatedAt
	m.UpdatedAt = c.now()
	c.rows[i] = rec
	return rec, nil
}

// Update applies mutate to a copy of the record with the given ID and stores
// the result if mutate returns nil. The ID cannot be changed by mutate.
func (c *Collection[T]) Update(ctx context.Context, id int64, mutate func(*T) error) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	rec := c.rows[i]
	if err := mutate(&rec); err != nil {
		return zero, err
	}
	m := c.meta(&rec)
	m.ID = id
	m.CreatedAt = c.meta(&c.rows[i]).CreatedAt
	m.UpdatedAt = c.now()
	c.rows[i] = rec
	return rec, nil
}

// UpdateAll applies mutate to every record and returns how many changed.
// mutate reports whether it modified the record.
func (c *Collection[T]) UpdateAll(ctx context.Context, mutate func(*T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	now := c.now()
	for i := range c.rows {
		if mutate(&c.rows[i]) {
			c.meta(&c.rows[i]).UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// Delete removes the record with the given ID.
func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	return nil
}

// Reset drops every record. Used by tests and reseeding.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
	c.lastID = 0
}

func (c *Collection[T]) indexOf(id int64) int {
	for i := range c.rows {
		if c.meta(&c.rows[i]).ID == id {
			return i
		}
	}
	return -1
}
