// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
)

// AppConfig holds the console's own settings. WAFFLE's CoreConfig covers
// ports, TLS, logging and timeouts; everything here is specific to the
// church admin console.
type AppConfig struct {
	// Session cookie
	SessionKey    string // signing key (must be strong in production)
	SessionName   string // cookie name
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// Sidebar title until settings carry an organization name
	SiteName string

	// Identity used when an unknown email signs in
	ConsoleUserName string
	ConsoleUserRole string

	// Initial console password (hashed into settings at startup)
	ConsolePassword string

	// Delay applied to POSTs so loading states are visible
	SimulatedLatency time.Duration

	// Login and forgot-password throttling
	LoginRatePerMinute int
	LoginRateBurst     int

	SeedEnabled bool

	// Store call deadlines used by handlers
	Timeouts timeouts.Config
}
