package claims_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-pkce-exchange/claims"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID    = "test-key"
	testClientID = "client-1"
)

func jwksServer(t *testing.T, key *rsa.PublicKey) *httptest.Server {
	t.Helper()
	jwks := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKeyID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signedIDToken(t *testing.T, key *rsa.PrivateKey, audience string) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, jwtlib.MapClaims{
		"iss":   "https://issuer.example.com",
		"aud":   audience,
		"sub":   "subject-1",
		"email": "u@d.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = testKeyID
	raw, err := tok.SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestVerifier_Claims(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := jwksServer(t, &key.PublicKey)

	v := claims.NewVerifier(context.Background(), srv.Client(), srv.URL, "", testClientID)

	t.Run("valid token", func(t *testing.T) {
		c := v.Claims(context.Background(), signedIDToken(t, key, testClientID))
		require.Equal(t, "u@d.com", c["email"])
		require.Equal(t, "subject-1", c["sub"])
	})

	t.Run("wrong audience", func(t *testing.T) {
		require.Nil(t, v.Claims(context.Background(), signedIDToken(t, key, "someone-else")))
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		require.Nil(t, v.Claims(context.Background(), signedIDToken(t, other, testClientID)))
	})

	t.Run("unsigned token", func(t *testing.T) {
		require.Nil(t, v.Claims(context.Background(), compact(`{"email":"u@d.com"}`)))
	})

	t.Run("empty token", func(t *testing.T) {
		require.Nil(t, v.Claims(context.Background(), ""))
	})
}

func TestVerifier_IssuerCheck(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := jwksServer(t, &key.PublicKey)

	v := claims.NewVerifier(context.Background(), srv.Client(), srv.URL, "https://other-issuer.example.com", testClientID)
	require.Nil(t, v.Claims(context.Background(), signedIDToken(t, key, testClientID)))
}
