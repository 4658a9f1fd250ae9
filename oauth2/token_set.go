package oauth2

import "strings"

// TokenSet is the result of a successful code exchange.
// It is built once by the token exchanger and never modified afterwards.
type TokenSet struct {
	// AccessToken is the bearer credential for the profile lookup API.
	AccessToken string `json:"access_token"`

	// RefreshToken is only present when offline_access was granted.
	RefreshToken *string `json:"refresh_token"`

	// IDToken is the compact OpenID Connect identity token.
	// Only present when the openid scope was granted.
	IDToken *string `json:"id_token"`

	// TokenType tells the client how to present the access token, usually "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime of the access token in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// Scope is the granted scope, or the requested scope when the provider omits it.
	Scope string `json:"scope"`

	// OfflineAccess reports whether the granted scope includes offline_access.
	OfflineAccess bool `json:"offline_access"`
}

// HasScope reports whether scope appears in the space separated granted scope.
func (t TokenSet) HasScope(scope string) bool {
	for _, s := range strings.Fields(t.Scope) {
		if s == scope {
			return true
		}
	}
	return false
}
