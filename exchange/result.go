package exchange

import (
	"github.com/jrsteele09/go-pkce-exchange/identity"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
)

const successMessage = "Token exchange completed successfully using PKCE (Public Client)"

// Result is the success envelope of one exchange.
type Result struct {
	Success     bool                  `json:"success"`
	Message     string                `json:"message"`
	Timestamp   string                `json:"timestamp"`
	Email       string                `json:"email"`
	EmailSource *identity.EmailSource `json:"emailSource"`
	Tokens      oauth2.TokenSet       `json:"tokens"`
	User        identity.Record       `json:"user"`
	OAuth       Metadata              `json:"oauth"`
}

// Metadata describes how the exchange was performed.
type Metadata struct {
	ExchangeID      string `json:"exchangeId"`
	ClientID        string `json:"clientId"`
	RedirectURI     string `json:"redirectUri"`
	Scope           string `json:"scope"`
	GrantType       string `json:"grantType"`
	AuthMethod      string `json:"authMethod"`
	State           string `json:"state,omitempty"`
	HasPKCE         bool   `json:"hasPKCE"`
	HasClientSecret bool   `json:"hasClientSecret"`
}
