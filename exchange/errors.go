package exchange

import (
	"fmt"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
)

const (
	MsgCodeRequired     = "Authorization code is required"
	MsgVerifierRequired = "PKCE code_verifier is required for public client authentication"
	HintPublicClient    = "This app is configured as a public client and must use PKCE flow"
)

// ValidationError reports a grant that was rejected before any network call.
type ValidationError struct {
	Err     error
	Message string
	Hint    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) *ValidationError {
	if errors.Is(err, errors.ErrCodeVerifierRequired) {
		return &ValidationError{Err: err, Message: MsgVerifierRequired, Hint: HintPublicClient}
	}
	return &ValidationError{Err: err, Message: MsgCodeRequired}
}

// UnhandledError wraps a panic or unexpected failure inside the pipeline.
type UnhandledError struct {
	Err   error
	Stack string
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled exchange error: %v", e.Err)
}

func (e *UnhandledError) Unwrap() []error {
	return []error{errors.ErrInternal, e.Err}
}
