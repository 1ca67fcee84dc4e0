package providers

import (
	"slices"
	"strings"

	"github.com/go-authgate/authbridge/internal/models"
)

// catalog is the curated set of providers offered to clients, keyed by canonical name.
// It is built once at package init and never mutated.
var catalog = map[string]models.ProviderInfo{
	"github": {
		Name:           "github",
		DisplayName:    "GitHub",
		IconURL:        "https://github.com/favicon.ico",
		Description:    "Sign in with your GitHub account",
		RequiresScopes: true,
		DefaultScopes:  []string{"user:email", "read:user"},
	},
	"google": {
		Name:           "google",
		DisplayName:    "Google",
		IconURL:        "https://www.google.com/favicon.ico",
		Description:    "Sign in with your Google account",
		RequiresScopes: true,
		DefaultScopes:  []string{"openid", "email", "profile"},
	},
	"discord": {
		Name:           "discord",
		DisplayName:    "Discord",
		IconURL:        "https://discord.com/assets/favicon.ico",
		Description:    "Sign in with your Discord account",
		RequiresScopes: true,
		DefaultScopes:  []string{"identify", "email"},
	},
	"twitter": {
		Name:           "twitter",
		DisplayName:    "Twitter",
		IconURL:        "https://twitter.com/favicon.ico",
		Description:    "Sign in with your Twitter account",
		RequiresScopes: false,
		DefaultScopes:  []string{},
	},
	"facebook": {
		Name:           "facebook",
		DisplayName:    "Facebook",
		IconURL:        "https://www.facebook.com/favicon.ico",
		Description:    "Sign in with your Facebook account",
		RequiresScopes: true,
		DefaultScopes:  []string{"email", "public_profile"},
	},
	"apple": {
		Name:           "apple",
		DisplayName:    "Apple",
		IconURL:        "https://www.apple.com/favicon.ico",
		Description:    "Sign in with your Apple ID",
		RequiresScopes: true,
		DefaultScopes:  []string{"name", "email"},
	},
	"azure": {
		Name:           "azure",
		DisplayName:    "Microsoft",
		IconURL:        "https://www.microsoft.com/favicon.iconv2",
		Description:    "Sign in with your Microsoft account",
		RequiresScopes: true,
		DefaultScopes:  []string{"openid", "profile", "email"},
	},
	"linkedin": {
		Name:           "linkedin",
		DisplayName:    "LinkedIn",
		IconURL:        "https://www.linkedin.com/favicon.ico",
		Description:    "Sign in with your LinkedIn account",
		RequiresScopes: true,
		DefaultScopes:  []string{"r_liteprofile", "r_emailaddress"},
	},
	"zoom": {
		Name:           "zoom",
		DisplayName:    "Zoom",
		IconURL:        "https://zoom.us/favicon.ico",
		Description:    "Sign in with your Zoom account",
		RequiresScopes: true,
		DefaultScopes:  []string{"user:read"},
	},
}

// pseudoProviders are login methods the backend models as providers but that
// have no OAuth redirect.
var pseudoProviders = map[string]struct{}{
	"email": {},
	"phone": {},
}

// backendProviders is every OAuth provider the identity backend accepts on /authorize.
var backendProviders = []string{
	"apple", "azure", "bitbucket", "discord", "facebook", "figma", "fly", "github",
	"gitlab", "google", "kakao", "keycloak", "linkedin", "linkedin_oidc", "notion",
	"slack", "slack_oidc", "spotify", "twitch", "twitter", "workos", "zoom",
}

// sorted is the List() order, computed once
var sorted = func() []models.ProviderInfo {
	list := make([]models.ProviderInfo, 0, len(catalog))
	for name, info := range catalog {
		if _, skip := pseudoProviders[name]; skip {
			continue
		}
		list = append(list, info)
	}
	slices.SortFunc(list, func(a, b models.ProviderInfo) int {
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
	return list
}()

// List returns the curated OAuth providers ordered by display name
func List() []models.ProviderInfo {
	out := make([]models.ProviderInfo, len(sorted))
	for i, info := range sorted {
		out[i] = clone(info)
	}
	return out
}

// Get looks up a curated provider by name, ignoring case
func Get(name string) (models.ProviderInfo, bool) {
	info, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.ProviderInfo{}, false
	}
	return clone(info), true
}

// IsSupported reports whether name is a curated provider
func IsSupported(name string) bool {
	_, ok := Get(name)
	return ok
}

// DisplayName returns the provider's display name, or name itself when unknown
func DisplayName(name string) string {
	if info, ok := Get(name); ok {
		return info.DisplayName
	}
	return name
}

// ParseBackendProvider matches name against the backend's provider enumeration
// and returns the canonical lowercase name.
func ParseBackendProvider(name string) (string, bool) {
	for _, p := range backendProviders {
		if strings.EqualFold(p, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return "", false
}

// DefaultScopeString returns the space-joined default scopes for a curated
// provider that requires scopes, or "".
func DefaultScopeString(name string) string {
	info, ok := catalog[strings.ToLower(name)]
	if !ok || !info.RequiresScopes {
		return ""
	}
	return strings.Join(info.DefaultScopes, " ")
}

func clone(info models.ProviderInfo) models.ProviderInfo {
	info.DefaultScopes = slices.Clone(info.DefaultScopes)
	return info
}
