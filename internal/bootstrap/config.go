package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-authgate/authbridge/internal/config"
)

// validateAllConfiguration validates all configuration settings and logs
// settings that are allowed but risky
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range configurationWarnings(cfg) {
		log.Printf("WARNING: %s", w)
	}
	return nil
}

// configurationWarnings lists settings that work but should not reach production
func configurationWarnings(cfg *config.Config) []string {
	var warnings []string

	if cfg.IdentityAPIInsecureSkipVerify {
		warnings = append(warnings,
			"identity API TLS verification is disabled (IDENTITY_API_INSECURE_SKIP_VERIFY=true)")
	}
	if cfg.VideoAPISecret == "" {
		warnings = append(warnings, "VIDEO_API_SECRET is not set; video endpoints will fail upstream")
	}
	if cfg.VideoAPIURL != "" && !strings.HasPrefix(cfg.VideoAPIURL, "https://") {
		warnings = append(warnings, "VIDEO_API_URL does not use HTTPS")
	}
	if cfg.IsProduction && cfg.TokenVerifyMode == config.TokenVerifyNone {
		warnings = append(warnings,
			"TOKEN_VERIFY_MODE=none: every protected request calls the identity backend")
	}
	if cfg.IsProduction && cfg.MetricsEnabled && cfg.MetricsToken == "" {
		warnings = append(warnings, "/metrics is exposed without authentication (METRICS_TOKEN unset)")
	}
	if cfg.IsProduction && len(cfg.RedirectAllowedHosts) == 0 {
		warnings = append(warnings,
			"REDIRECT_ALLOWED_HOSTS is empty: any http(s) redirect target is accepted")
	}
	return warnings
}
