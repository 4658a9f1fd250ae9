package store

// Store is the key-value port used to stash the PKCE verifier before the
// redirect to the identity provider and the token set after the callback.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

const (
	verifierKeyPrefix = "pkce_verifier:"
	tokensKeyPrefix   = "oauth_tokens:"
)

// VerifierKey returns the key that holds the PKCE verifier for a state value.
func VerifierKey(state string) string {
	return verifierKeyPrefix + state
}

// TokensKey returns the key that holds the exchange result for a state value.
func TokensKey(state string) string {
	return tokensKeyPrefix + state
}
