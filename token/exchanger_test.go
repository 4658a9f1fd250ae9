package token_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
	"github.com/jrsteele09/go-pkce-exchange/internal/utils"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/jrsteele09/go-pkce-exchange/token"
	"github.com/stretchr/testify/require"
)

const (
	testClientID    = "public-client-1"
	testScope       = "openid profile email offline_access"
	testRedirectURI = "http://localhost:3000/oauth-callback"
)

type capturedRequest struct {
	form          url.Values
	authorization string
	contentType   string
}

func stubTokenEndpoint(t *testing.T, status int, body string) (*httptest.Server, chan capturedRequest) {
	t.Helper()
	return stubTokenEndpointWithType(t, "application/json", status, body)
}

// stubTokenEndpointWithType replies with the given Content-Type. An empty
// contentType sends no Content-Type header at all.
func stubTokenEndpointWithType(t *testing.T, contentType string, status int, body string) (*httptest.Server, chan capturedRequest) {
	t.Helper()
	requests := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		requests <- capturedRequest{
			form:          r.PostForm,
			authorization: r.Header.Get("Authorization"),
			contentType:   r.Header.Get("Content-Type"),
		}
		if contentType == "" {
			w.Header()["Content-Type"] = nil
		} else {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func testGrant() oauth2.AuthorizationGrant {
	return oauth2.AuthorizationGrant{
		Code:         "abc",
		CodeVerifier: "v1",
		RedirectURI:  testRedirectURI,
		State:        "s1",
	}
}

func TestExchanger_Exchange(t *testing.T) {
	t.Run("sends public client form without secret", func(t *testing.T) {
		srv, requests := stubTokenEndpoint(t, http.StatusOK, `{"access_token":"t1","token_type":"Bearer","expires_in":3600}`)
		ex := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL)

		_, err := ex.Exchange(context.Background(), testGrant())
		require.NoError(t, err)

		req := <-requests
		require.Contains(t, req.contentType, "application/x-www-form-urlencoded")
		require.Empty(t, req.authorization)
		require.Equal(t, testClientID, req.form.Get("client_id"))
		require.Equal(t, "authorization_code", req.form.Get("grant_type"))
		require.Equal(t, "abc", req.form.Get("code"))
		require.Equal(t, testRedirectURI, req.form.Get("redirect_uri"))
		require.Equal(t, testScope, req.form.Get("scope"))
		require.Equal(t, "v1", req.form.Get("code_verifier"))
		_, hasSecret := req.form["client_secret"]
		require.False(t, hasSecret)
	})

	t.Run("full token set", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{
			"access_token":"t1",
			"refresh_token":"r1",
			"id_token":"a.b.c",
			"token_type":"Bearer",
			"expires_in":3600,
			"scope":"openid offline_access"
		}`)
		ts, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())
		require.NoError(t, err)
		require.Equal(t, "t1", ts.AccessToken)
		require.Equal(t, "r1", utils.Value(ts.RefreshToken))
		require.Equal(t, "a.b.c", utils.Value(ts.IDToken))
		require.Equal(t, "Bearer", ts.TokenType)
		require.Equal(t, int64(3600), ts.ExpiresIn)
		require.Equal(t, "openid offline_access", ts.Scope)
		require.True(t, ts.OfflineAccess)
	})

	t.Run("defaults for omitted fields", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{"access_token":"t1"}`)
		ts, err := token.NewExchanger(srv.Client(), testClientID, "openid", srv.URL).Exchange(context.Background(), testGrant())
		require.NoError(t, err)
		require.Nil(t, ts.RefreshToken)
		require.Nil(t, ts.IDToken)
		require.Equal(t, "Bearer", ts.TokenType)
		require.Equal(t, "openid", ts.Scope)
		require.False(t, ts.OfflineAccess)
	})

	t.Run("provider error", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"expired"}`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())

		var pe *token.ProviderError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, "invalid_grant", pe.Code)
		require.Equal(t, "expired", pe.Description)
		require.Equal(t, oauth2.HintInvalidGrant, pe.Hint)
		require.ErrorIs(t, err, errors.ErrProviderRejected)
	})

	t.Run("provider error with success status", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{"error":"invalid_client","error_description":"AADSTS7000218"}`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())

		var pe *token.ProviderError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, oauth2.HintInvalidClient, pe.Hint)
	})

	t.Run("unknown provider error gets default hint", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusBadRequest, `{"error":"temporarily_unavailable"}`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())

		var pe *token.ProviderError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, oauth2.HintDefault, pe.Hint)
	})

	t.Run("server error without error code", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusInternalServerError, `<html>oops</html>`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())

		var te *token.TransportError
		require.ErrorAs(t, err, &te)
		require.ErrorIs(t, err, errors.ErrTokenTransport)
	})

	t.Run("missing access token", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{"token_type":"Bearer"}`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())
		require.ErrorIs(t, err, errors.ErrTokenTransport)
	})

	t.Run("provider error sent as text/plain", func(t *testing.T) {
		srv, _ := stubTokenEndpointWithType(t, "text/plain; charset=utf-8", http.StatusBadRequest, `{"error":"invalid_grant","error_description":"expired"}`)
		_, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())

		var pe *token.ProviderError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, "invalid_grant", pe.Code)
		require.Equal(t, "expired", pe.Description)
		require.Equal(t, oauth2.HintInvalidGrant, pe.Hint)
	})

	t.Run("json token set without content type", func(t *testing.T) {
		srv, _ := stubTokenEndpointWithType(t, "", http.StatusOK, `{"access_token":"t1","expires_in":3600,"scope":"openid"}`)
		ts, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())
		require.NoError(t, err)
		require.Equal(t, "t1", ts.AccessToken)
		require.Equal(t, int64(3600), ts.ExpiresIn)
		require.Equal(t, "openid", ts.Scope)
	})

	t.Run("form encoded token set", func(t *testing.T) {
		srv, _ := stubTokenEndpointWithType(t, "application/x-www-form-urlencoded", http.StatusOK, "access_token=t1&token_type=bearer&expires_in=3600&scope=openid")
		ts, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())
		require.NoError(t, err)
		require.Equal(t, "t1", ts.AccessToken)
		require.Equal(t, int64(3600), ts.ExpiresIn)
		require.Equal(t, "openid", ts.Scope)
	})

	t.Run("quoted expires_in", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{"access_token":"t1","expires_in":"3600"}`)
		ts, err := token.NewExchanger(srv.Client(), testClientID, testScope, srv.URL).Exchange(context.Background(), testGrant())
		require.NoError(t, err)
		require.Equal(t, int64(3600), ts.ExpiresIn)
	})

	t.Run("caller client is not modified", func(t *testing.T) {
		client := &http.Client{}
		token.NewExchanger(client, testClientID, testScope, "http://unused")
		require.Nil(t, client.Transport)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv, _ := stubTokenEndpoint(t, http.StatusOK, `{}`)
		tokenURL := srv.URL
		srv.Close()
		_, err := token.NewExchanger(http.DefaultClient, testClientID, testScope, tokenURL).Exchange(context.Background(), testGrant())
		require.ErrorIs(t, err, errors.ErrTokenTransport)
	})
}
