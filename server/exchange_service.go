package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-pkce-exchange/claims"
	"github.com/jrsteele09/go-pkce-exchange/exchange"
	"github.com/jrsteele09/go-pkce-exchange/internal/config"
	"github.com/jrsteele09/go-pkce-exchange/profile"
	"github.com/jrsteele09/go-pkce-exchange/token"
	"github.com/rs/zerolog/log"
)

// newExchangeService wires the exchange pipeline from configuration. All
// outbound calls share one client so HTTP_TIMEOUT bounds every request.
func newExchangeService(ctx context.Context, c config.Config) *exchange.Service {
	httpClient := &http.Client{Timeout: c.GetHTTPTimeout()}

	var claimsSource claims.Source = claims.Decoder{}
	if jwksURL := c.GetJWKSURL(); jwksURL != "" {
		log.Info().Str("jwks_url", jwksURL).Str("issuer", c.GetIssuer()).Msg("id token signature verification enabled")
		claimsSource = claims.NewVerifier(ctx, httpClient, jwksURL, c.GetIssuer(), c.GetClientID())
	}

	return exchange.NewService(
		token.NewExchanger(httpClient, c.GetClientID(), c.GetScope(), c.GetTokenURL()),
		claimsSource,
		profile.NewResolver(httpClient, c.GetProfileURL()),
		exchange.Settings{
			ClientID: c.GetClientID(),
			Scope:    c.GetScope(),
			BaseURL:  c.GetBaseURL(),
		},
	)
}
