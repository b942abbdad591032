// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	devSessionKey      = "dev-only-change-me-please-0123456789ABCDEF"
	devConsolePassword = "churchadmin"
)

// appConfigKeys are loaded through WAFFLE's config layer:
//   - config files: session_name, site_name, ...
//   - environment: CHURCHADMIN_SESSION_NAME, CHURCHADMIN_SITE_NAME, ...
//   - flags: --session_name, --site_name, ...
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "churchadmin-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 8h, 24h)"},

	{Name: "site_name", Default: "Church Management", Desc: "Name shown in the sidebar when settings have none"},
	{Name: "console_user_name", Default: "Admin", Desc: "Display name for sign-ins with an unknown email"},
	{Name: "console_user_role", Default: "Super Admin", Desc: "Role for sign-ins with an unknown email"},
	{Name: "console_password", Default: devConsolePassword, Desc: "Console password hashed into settings at startup"},

	{Name: "simulated_latency", Default: "0s", Desc: "Delay applied to form submissions (e.g., 800ms)"},
	{Name: "login_rate_limit", Default: 10, Desc: "Sign-in attempts allowed per minute per client"},
	{Name: "login_rate_burst", Default: 5, Desc: "Sign-in attempts allowed in a burst"},

	{Name: "seed_enabled", Default: true, Desc: "Load the demo fixture at startup"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-record reads"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list pages and writes"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for exports"},
}

// LoadConfig loads WAFFLE core config and the console's app config.
// Precedence is flags > env (CHURCHADMIN_*) > config files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CHURCHADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		SiteName:        appValues.String("site_name"),
		ConsoleUserName: appValues.String("console_user_name"),
		ConsoleUserRole: appValues.String("console_user_role"),
		ConsolePassword: appValues.String("console_password"),

		SimulatedLatency:   appValues.Duration("simulated_latency", 0),
		LoginRatePerMinute: appValues.Int("login_rate_limit"),
		LoginRateBurst:     appValues.Int("login_rate_burst"),

		SeedEnabled: appValues.Bool("seed_enabled"),

		Timeouts: timeouts.Config{
			Short:  appValues.Duration("timeout_short", timeouts.DefaultShort),
			Medium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
			Long:   appValues.Duration("timeout_long", timeouts.DefaultLong),
		},
	}

	if appCfg.SessionKey == devSessionKey {
		logger.Warn("using the development session key; set CHURCHADMIN_SESSION_KEY in production")
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig rejects settings the console cannot start with.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if coreCfg.Env == "prod" && appCfg.SessionKey == devSessionKey {
		return errors.New("session_key must be changed from the development default in prod")
	}
	if appCfg.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive, got %s", appCfg.SessionMaxAge)
	}
	if appCfg.SimulatedLatency < 0 {
		return fmt.Errorf("simulated_latency cannot be negative, got %s", appCfg.SimulatedLatency)
	}
	if appCfg.LoginRatePerMinute <= 0 || appCfg.LoginRateBurst <= 0 {
		logger.Error("invalid login rate limit",
			zap.Int("per_minute", appCfg.LoginRatePerMinute),
			zap.Int("burst", appCfg.LoginRateBurst))
		return errors.New("login_rate_limit and login_rate_burst must be positive")
	}
	if len(appCfg.ConsolePassword) < settingsstore.MinPasswordLength {
		return fmt.Errorf("console_password must be at least %d characters", settingsstore.MinPasswordLength)
	}
	if coreCfg.Env == "prod" && appCfg.ConsolePassword == devConsolePassword {
		logger.Warn("console password is the development default")
	}
	return nil
}
