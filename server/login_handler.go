package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/jrsteele09/go-pkce-exchange/store"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

const stateLength = 32

// OAuthLogin starts the browser flow: it stashes a fresh PKCE verifier under
// a new state value and redirects to the provider's authorization endpoint
// with the S256 challenge.
func (s *Server) OAuthLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateRandomString(stateLength)
		verifier := xoauth2.GenerateVerifier()

		if err := s.store.Set(store.VerifierKey(state), verifier); err != nil {
			log.Err(err).Msg("Failed to store PKCE verifier")
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		cfg := xoauth2.Config{
			ClientID:    s.config.GetClientID(),
			Endpoint:    xoauth2.Endpoint{AuthURL: s.config.GetAuthorizeURL()},
			RedirectURL: s.config.GetBaseURL() + oauth2.CallbackPath,
			Scopes:      strings.Fields(s.config.GetScope()),
		}

		noStore(w)
		http.Redirect(w, r, cfg.AuthCodeURL(state, xoauth2.S256ChallengeOption(verifier)), http.StatusFound)
	}
}
