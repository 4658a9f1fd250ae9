package oauth2

// Error codes returned by the provider's token endpoint (RFC 6749 section 5.2).
const (
	ErrorInvalidGrant        = "invalid_grant"
	ErrorInvalidClient       = "invalid_client"
	ErrorRedirectURIMismatch = "redirect_uri_mismatch"
	ErrorInvalidRequest      = "invalid_request"
)

const (
	HintInvalidGrant        = "Authorization code may have expired or been used already. Try authenticating again."
	HintInvalidClient       = "Client authentication failed. Ensure the app registration is configured as a public client."
	HintRedirectURIMismatch = "Redirect URI mismatch. Ensure the redirect_uri matches exactly what is registered with the identity provider."
	HintInvalidRequest      = "Invalid request parameters. Check that all required parameters are included."
	HintDefault             = "Check the OAuth client configuration at the identity provider."
)

var providerHints = map[string]string{
	ErrorInvalidGrant:        HintInvalidGrant,
	ErrorInvalidClient:       HintInvalidClient,
	ErrorRedirectURIMismatch: HintRedirectURIMismatch,
	ErrorInvalidRequest:      HintInvalidRequest,
}

// HintForError returns a human readable remedy for a provider error code.
func HintForError(code string) string {
	if hint, ok := providerHints[code]; ok {
		return hint
	}
	return HintDefault
}
