package models

// ProviderInfo describes an OAuth provider offered to clients
type ProviderInfo struct {
	Name           string   `json:"name"` // lowercase canonical id
	DisplayName    string   `json:"display_name"`
	IconURL        string   `json:"icon_url"`
	Description    string   `json:"description"`
	RequiresScopes bool     `json:"requires_scopes"`
	DefaultScopes  []string `json:"default_scopes"`
}

// OAuthOptions are the caller-supplied overrides for an authorization URL
type OAuthOptions struct {
	RedirectTo  string            `json:"redirect_to,omitempty"`
	Scopes      []string          `json:"scopes,omitempty"`
	QueryParams map[string]string `json:"query_params,omitempty"`
}

// OAuthParams is the merged request sent to the identity backend
type OAuthParams struct {
	RedirectTo  string
	Scopes      string // space-separated
	QueryParams map[string]string
}

// AuthorizationURL is the backend's answer to an OAuth authorization request
type AuthorizationURL struct {
	Provider     string
	URL          string
	CodeVerifier string // PKCE flow only
}
