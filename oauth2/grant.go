package oauth2

import (
	"strings"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
)

// AuthorizationGrant carries the artifacts returned to the client by the
// authorization endpoint, plus the PKCE verifier the client generated.
// A grant is consumed by exactly one token exchange.
type AuthorizationGrant struct {
	Code         string `json:"code"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	CodeVerifier string `json:"code_verifier"`
	State        string `json:"state,omitempty"`
}

// Validate checks the fields the token endpoint cannot do without.
// The code is checked first so a grant missing both reports the missing code.
func (g AuthorizationGrant) Validate() error {
	if strings.TrimSpace(g.Code) == "" {
		return errors.ErrCodeRequired
	}
	if strings.TrimSpace(g.CodeVerifier) == "" {
		return errors.ErrCodeVerifierRequired
	}
	return nil
}

// WithDefaultRedirect returns a copy of the grant whose redirect URI falls back
// to <baseURL>/oauth-callback. The value must match the registered redirect
// URI exactly or the provider rejects the exchange.
func (g AuthorizationGrant) WithDefaultRedirect(baseURL string) AuthorizationGrant {
	if g.RedirectURI == "" {
		g.RedirectURI = strings.TrimSuffix(baseURL, "/") + CallbackPath
	}
	return g
}
