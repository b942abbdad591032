// internal/app/features/hr/templates.go
package hr

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "hr",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
