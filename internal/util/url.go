package util

import (
	"net/url"
	"strings"
)

// IsRedirectAllowed validates an OAuth/magic-link redirect target.
// It only allows:
// 1. Absolute http(s) URLs
// 2. Whose host matches an entry of allowedHosts ("app.example.com" or "*.example.com")
// An empty allowlist accepts any http(s) host.
func IsRedirectAllowed(redirectURL string, allowedHosts []string) bool {
	// Empty redirect is allowed (backend default applies)
	if redirectURL == "" {
		return true
	}

	// Must not contain newlines or carriage returns (header injection)
	if strings.ContainsAny(redirectURL, "\r\n\\") {
		return false
	}

	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return false
	}

	// Reject javascript:, data:, relative and protocol-relative targets
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" || parsed.User != nil {
		return false
	}

	if len(allowedHosts) == 0 {
		return true
	}

	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if suffix, ok := strings.CutPrefix(allowed, "*."); ok {
			if strings.HasSuffix(host, "."+suffix) {
				return true
			}
			continue
		}
		if host == allowed || strings.ToLower(parsed.Host) == allowed {
			return true
		}
	}
	return false
}
