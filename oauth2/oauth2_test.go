package oauth2_test

import (
	"testing"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/stretchr/testify/require"
)

func TestHintForError(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"invalid_grant", oauth2.HintInvalidGrant},
		{"invalid_client", oauth2.HintInvalidClient},
		{"redirect_uri_mismatch", oauth2.HintRedirectURIMismatch},
		{"invalid_request", oauth2.HintInvalidRequest},
		{"unauthorized_client", oauth2.HintDefault},
		{"", oauth2.HintDefault},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.want, oauth2.HintForError(tt.code))
		})
	}

	require.Contains(t, oauth2.HintForError("invalid_grant"), "expired")
	require.Contains(t, oauth2.HintForError("invalid_client"), "public client")
}

func TestAuthorizationGrant_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, oauth2.AuthorizationGrant{Code: "abc", CodeVerifier: "v1"}.Validate())
	})

	t.Run("missing code", func(t *testing.T) {
		err := oauth2.AuthorizationGrant{CodeVerifier: "v1"}.Validate()
		require.ErrorIs(t, err, errors.ErrCodeRequired)
	})

	t.Run("missing both reports code", func(t *testing.T) {
		err := oauth2.AuthorizationGrant{}.Validate()
		require.ErrorIs(t, err, errors.ErrCodeRequired)
	})

	t.Run("missing verifier", func(t *testing.T) {
		err := oauth2.AuthorizationGrant{Code: "abc", CodeVerifier: "  "}.Validate()
		require.ErrorIs(t, err, errors.ErrCodeVerifierRequired)
	})
}

func TestAuthorizationGrant_WithDefaultRedirect(t *testing.T) {
	g := oauth2.AuthorizationGrant{Code: "abc"}.WithDefaultRedirect("https://app.example.com/")
	require.Equal(t, "https://app.example.com/oauth-callback", g.RedirectURI)

	g = oauth2.AuthorizationGrant{Code: "abc", RedirectURI: "https://other/cb"}.WithDefaultRedirect("https://app.example.com")
	require.Equal(t, "https://other/cb", g.RedirectURI)
}

func TestTokenSet_HasScope(t *testing.T) {
	ts := oauth2.TokenSet{Scope: "openid profile offline_access"}
	require.True(t, ts.HasScope(oauth2.OfflineAccessScope))
	require.False(t, ts.HasScope("offline"))
}
