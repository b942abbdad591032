// internal/domain/models/meta.go
package models

import "time"

// Meta is embedded in every record held by the in-memory store.
// ID doubles as the creation stamp (Unix milliseconds) for records
// created at runtime; seeded records keep the small IDs from the fixture.
type Meta struct {
	ID        int64     `yaml:"id"`
	CreatedAt time.Time `yaml:"-"`
	UpdatedAt time.Time `yaml:"-"`
}

// Record returns the embedded Meta so generic code can stamp it.
func (m *Meta) Record() *Meta { return m }

// Key returns the record ID.
func (m Meta) Key() int64 { return m.ID }
