package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/jrsteele09/go-pkce-exchange/store"
	"github.com/rs/zerolog/log"
)

// OAuthCallback completes the browser flow. It reads code, state and error
// from the query, loads the verifier stashed by OAuthLogin, runs the exchange
// and keeps the result in the store under the state value. Every failure
// redirects to the configured failure page.
func (s *Server) OAuthCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		code := query.Get("code")
		state := query.Get("state")
		errorParam := query.Get("error")

		noStore(w)

		if errorParam != "" || code == "" || state == "" {
			log.Warn().
				Str("error", errorParam).
				Str("error_description", query.Get("error_description")).
				Bool("has_code", code != "").
				Bool("has_state", state != "").
				Msg("OAuth callback: error or missing parameters")
			s.redirectFailure(w, r)
			return
		}

		verifierKey := store.VerifierKey(state)
		verifier, err := s.store.Get(verifierKey)
		if err != nil || verifier == "" {
			log.Warn().Err(err).Msg("OAuth callback: missing PKCE code verifier")
			s.redirectFailure(w, r)
			return
		}
		// The code is single use, so the verifier is spent whatever the outcome.
		defer func() {
			if err := s.store.Remove(verifierKey); err != nil {
				log.Err(err).Msg("OAuth callback: failed to clear PKCE verifier")
			}
		}()

		result, err := s.exchange.Exchange(r.Context(), oauth2.AuthorizationGrant{
			Code:         code,
			CodeVerifier: verifier,
			State:        state,
		})
		if err != nil {
			log.Err(err).Msg("OAuth callback: token exchange failed")
			s.redirectFailure(w, r)
			return
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			log.Err(err).Msg("OAuth callback: failed to encode exchange result")
			s.redirectFailure(w, r)
			return
		}
		if err := s.store.Set(store.TokensKey(state), string(encoded)); err != nil {
			log.Err(err).Msg("OAuth callback: failed to store tokens")
			s.redirectFailure(w, r)
			return
		}

		source := "placeholder"
		if result.EmailSource != nil {
			source = string(*result.EmailSource)
		}
		log.Info().Str("exchange_id", result.OAuth.ExchangeID).Str("email_source", source).Msg("OAuth callback: signed in")
		http.Redirect(w, r, s.config.GetSuccessRedirect(), http.StatusSeeOther)
	}
}

func (s *Server) redirectFailure(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.config.GetFailureRedirect(), http.StatusSeeOther)
}
