package crud

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// The generic list, form, view and delete pages live in their own set.
// Names in the "shared" set are only reachable from other templates, never
// rendered by name.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "crud",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
