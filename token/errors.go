package token

import (
	"fmt"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
)

// ProviderError is returned when the token endpoint answers with an OAuth
// error code, e.g. an expired or replayed authorization code.
type ProviderError struct {
	Code        string
	Description string
	Hint        string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("token exchange failed: %s", e.Code)
	}
	return fmt.Sprintf("token exchange failed: %s: %s", e.Code, e.Description)
}

func (e *ProviderError) Unwrap() error {
	return errors.ErrProviderRejected
}

// TransportError covers network failures and responses that cannot be
// parsed into a token set.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{errors.ErrTokenTransport, e.Err}
}
