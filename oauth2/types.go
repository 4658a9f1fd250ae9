package oauth2

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: client_id, code, redirect_uri, scope, code_verifier
	// Returns: access_token, id_token (openid scope), refresh_token (offline_access scope)
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// CodeMethodType represents the PKCE (Proof Key for Code Exchange) challenge method.
type CodeMethodType string

const (
	// CodeMethodTypeS256 indicates SHA-256 hashing is used for the code challenge.
	// Client sends: code_challenge = BASE64URL(SHA256(code_verifier))
	CodeMethodTypeS256 CodeMethodType = "S256"
)

// AuthMethodPKCE describes how the client authenticates at the token endpoint.
// Public clients hold no secret, so the PKCE verifier is the only proof.
const AuthMethodPKCE = "PKCE (Public Client)"

// OfflineAccessScope is the scope that makes the provider issue a refresh token.
const OfflineAccessScope = "offline_access"

// CallbackPath is appended to the deployment base URL to form the default redirect URI.
const CallbackPath = "/oauth-callback"
