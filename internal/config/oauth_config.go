package config

type OAuthConfig interface {
	GetClientID() string
	GetScope() string
	GetTokenURL() string
	GetAuthorizeURL() string
	GetProfileURL() string
	GetJWKSURL() string
	GetIssuer() string
}

// OAuth holds the public client settings. There is no client
// secret: the client authenticates with PKCE only.
type OAuth struct {
	ClientID     string `env:"OAUTH_CLIENT_ID"`
	Scope        string `env:"OAUTH_SCOPE" envDefault:"openid profile email User.Read offline_access"`
	TokenURL     string `env:"OAUTH_TOKEN_URL" envDefault:"https://login.microsoftonline.com/common/oauth2/v2.0/token"`
	AuthorizeURL string `env:"OAUTH_AUTHORIZE_URL" envDefault:"https://login.microsoftonline.com/common/oauth2/v2.0/authorize"`
	ProfileURL   string `env:"PROFILE_URL" envDefault:"https://graph.microsoft.com/v1.0/me"`
	JWKSURL      string `env:"OIDC_JWKS_URL"`
	Issuer       string `env:"OIDC_ISSUER"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetScope() string {
	return o.Scope
}

func (o OAuth) GetTokenURL() string {
	return o.TokenURL
}

func (o OAuth) GetAuthorizeURL() string {
	return o.AuthorizeURL
}

func (o OAuth) GetProfileURL() string {
	return o.ProfileURL
}

// GetJWKSURL returns the key set used to verify id tokens. Empty disables verification.
func (o OAuth) GetJWKSURL() string {
	return o.JWKSURL
}

func (o OAuth) GetIssuer() string {
	return o.Issuer
}
