package token

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
	"github.com/jrsteele09/go-pkce-exchange/internal/utils"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

const defaultTokenType = "Bearer"

// Exchanger trades an authorization code for tokens on behalf of a public
// client. The request carries the PKCE verifier and never a client secret.
type Exchanger struct {
	httpClient *http.Client
	clientID   string
	scope      string
	tokenURL   string
}

func NewExchanger(httpClient *http.Client, clientID, scope, tokenURL string) *Exchanger {
	return &Exchanger{
		httpClient: withJSONResponses(httpClient),
		clientID:   clientID,
		scope:      scope,
		tokenURL:   tokenURL,
	}
}

// Exchange posts client_id, grant_type, code, redirect_uri, scope and
// code_verifier to the token endpoint. Provider rejections come back as
// *ProviderError, anything else as *TransportError. Nothing is retried.
func (e *Exchanger) Exchange(ctx context.Context, grant oauth2.AuthorizationGrant) (oauth2.TokenSet, error) {
	cfg := &xoauth2.Config{
		ClientID: e.clientID,
		Endpoint: xoauth2.Endpoint{
			TokenURL:  e.tokenURL,
			AuthStyle: xoauth2.AuthStyleInParams,
		},
		RedirectURL: grant.RedirectURI,
	}
	ctx = context.WithValue(ctx, xoauth2.HTTPClient, e.httpClient)

	log.Debug().
		Str("client_id", e.clientID).
		Str("redirect_uri", grant.RedirectURI).
		Bool("has_code", grant.Code != "").
		Bool("has_code_verifier", grant.CodeVerifier != "").
		Str("state", grant.State).
		Msg("token: exchanging authorization code")

	tok, err := cfg.Exchange(ctx, grant.Code,
		xoauth2.VerifierOption(grant.CodeVerifier),
		xoauth2.SetAuthURLParam("scope", e.scope),
	)
	if err != nil {
		var re *xoauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode != "" {
			log.Error().Str("error", re.ErrorCode).Str("error_description", re.ErrorDescription).Msg("token: provider rejected exchange")
			return oauth2.TokenSet{}, &ProviderError{
				Code:        re.ErrorCode,
				Description: re.ErrorDescription,
				Hint:        oauth2.HintForError(re.ErrorCode),
			}
		}
		log.Error().Err(err).Msg("token: exchange request failed")
		return oauth2.TokenSet{}, &TransportError{Err: err}
	}

	ts := e.tokenSet(tok)
	log.Info().
		Bool("has_access_token", ts.AccessToken != "").
		Bool("has_refresh_token", ts.RefreshToken != nil).
		Bool("has_id_token", ts.IDToken != nil).
		Int64("expires_in", ts.ExpiresIn).
		Str("granted_scope", ts.Scope).
		Msg("token: exchange successful")
	return ts, nil
}

func (e *Exchanger) tokenSet(tok *xoauth2.Token) oauth2.TokenSet {
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	scope, _ := tok.Extra("scope").(string)
	if scope == "" {
		scope = e.scope
	}
	idToken, _ := tok.Extra("id_token").(string)

	ts := oauth2.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: utils.NonEmpty(tok.RefreshToken),
		IDToken:      utils.NonEmpty(idToken),
		TokenType:    tokenType,
		ExpiresIn:    expiresIn(tok),
		Scope:        scope,
	}
	ts.OfflineAccess = ts.HasScope(oauth2.OfflineAccessScope)
	return ts
}

// expiresIn echoes the provider's expires_in. Exchange only fills Expiry, so
// the value is read from the raw response, quoted or not.
func expiresIn(tok *xoauth2.Token) int64 {
	if tok.ExpiresIn != 0 {
		return tok.ExpiresIn
	}
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Warn().Str("expires_in", v).Msg("token: unparseable expires_in")
		}
		return n
	}
	return 0
}
