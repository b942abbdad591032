package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/ohenegyan12/church-management/internal/app/resources"
	"go.uber.org/zap"
)

var (
	bootOnce sync.Once
	bootErr  error
)

// BootTemplates compiles every template set registered in the test binary
// and installs the engine, so handler tests see the pages users see.
// Feature packages register their sets from init, which has run by the time
// a test calls this.
func BootTemplates(t *testing.T) {
	t.Helper()
	bootOnce.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if bootErr = eng.Boot(zap.NewNop()); bootErr != nil {
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	if bootErr != nil {
		t.Fatalf("boot templates: %v", bootErr)
	}
}
