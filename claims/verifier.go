package claims

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Verifier checks the id token signature, audience and expiry against the
// provider's JWKS before returning its claims.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ Source = (*Verifier)(nil)

// NewVerifier builds a verifier for tokens issued to clientID. An empty issuer
// skips the issuer check, which multi-tenant providers need.
func NewVerifier(ctx context.Context, httpClient *http.Client, jwksURL, issuer, clientID string) *Verifier {
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	return &Verifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			ClientID:        clientID,
			SkipIssuerCheck: issuer == "",
		}),
	}
}

// Claims returns nil when the token fails verification.
func (v *Verifier) Claims(ctx context.Context, rawIDToken string) jwtlib.MapClaims {
	if rawIDToken == "" {
		return nil
	}
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Warn().Err(err).Msg("claims: id token verification failed")
		return nil
	}
	var c jwtlib.MapClaims
	if err := idToken.Claims(&c); err != nil {
		log.Warn().Err(err).Msg("claims: failed to read verified claims")
		return nil
	}
	return c
}
