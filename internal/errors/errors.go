package errors

import (
	"errors"
	"fmt"
)

// Common error types for the exchange service
var (
	// Validation errors
	ErrCodeRequired         = errors.New("authorization code is required")
	ErrCodeVerifierRequired = errors.New("PKCE code_verifier is required")

	// Token endpoint errors
	ErrProviderRejected = errors.New("provider rejected token request")
	ErrTokenTransport   = errors.New("token endpoint unreachable")

	// Storage errors
	ErrNotFound = errors.New("not found")
	ErrEmptyKey = errors.New("key cannot be empty")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
