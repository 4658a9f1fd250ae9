package server

import (
	"encoding/json"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/jrsteele09/go-pkce-exchange/exchange"
	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/jrsteele09/go-pkce-exchange/token"
	"github.com/rs/zerolog/log"
)

const (
	maxRequestBody = 64 << 10

	msgMethodNotAllowed    = "Method not allowed"
	msgTokenExchangeFailed = "Token exchange failed"
	msgInternalError       = "Internal server error during token exchange"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type providerErrorResponse struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	ErrorCode         string `json:"errorCode"`
	Details           string `json:"details"`
	Hint              string `json:"hint"`
	AuthorizationCode string `json:"authorizationCode"`
	AuthMethod        string `json:"authMethod"`
	ClientID          string `json:"clientId"`
	RedirectURI       string `json:"redirectUri"`
}

type transportErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

type internalErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// TokenExchange trades {code, redirect_uri?, code_verifier, state?} for tokens
// and the reconciled identity. OPTIONS is answered by CorsMiddleware.
func (s *Server) TokenExchange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethodNotAllowed})
			return
		}

		var grant oauth2.AuthorizationGrant
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&grant); err != nil {
			s.writeInternalError(w, errors.Wrapf(err, "invalid request body"), string(debug.Stack()))
			return
		}

		result, err := s.exchange.Exchange(r.Context(), grant)
		if err != nil {
			s.writeExchangeError(w, grant, err)
			return
		}

		noStore(w)
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) writeExchangeError(w http.ResponseWriter, grant oauth2.AuthorizationGrant, err error) {
	var (
		validationErr *exchange.ValidationError
		providerErr   *token.ProviderError
		transportErr  *token.TransportError
		unhandledErr  *exchange.UnhandledError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Hint: validationErr.Hint})

	case errors.As(err, &providerErr):
		writeJSON(w, http.StatusBadRequest, providerErrorResponse{
			Success:           false,
			Error:             msgTokenExchangeFailed,
			ErrorCode:         providerErr.Code,
			Details:           providerErr.Description,
			Hint:              providerErr.Hint,
			AuthorizationCode: truncateCode(grant.Code),
			AuthMethod:        oauth2.AuthMethodPKCE,
			ClientID:          s.config.GetClientID(),
			RedirectURI:       grant.WithDefaultRedirect(s.config.GetBaseURL()).RedirectURI,
		})

	case errors.As(err, &transportErr):
		writeJSON(w, http.StatusBadGateway, transportErrorResponse{
			Success: false,
			Error:   msgTokenExchangeFailed,
			Details: transportErr.Err.Error(),
		})

	case errors.As(err, &unhandledErr):
		s.writeInternalError(w, unhandledErr.Err, unhandledErr.Stack)

	default:
		s.writeInternalError(w, err, "")
	}
}

// writeInternalError writes the 500 envelope. The stack is only exposed in DEV.
func (s *Server) writeInternalError(w http.ResponseWriter, err error, stack string) {
	log.Err(err).Msg("Token exchange error")
	resp := internalErrorResponse{
		Success: false,
		Error:   msgInternalError,
		Message: err.Error(),
	}
	if s.isDev() {
		resp.Stack = stack
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// truncateCode keeps enough of the authorization code to correlate logs
// without echoing the whole credential.
func truncateCode(code string) string {
	const keep = 20
	if len(code) <= keep {
		return code + "..."
	}
	return code[:keep] + "..."
}
