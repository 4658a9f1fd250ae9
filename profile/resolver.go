package profile

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/go-pkce-exchange/internal/utils"
	"github.com/rs/zerolog/log"
)

const maxProfileBody = 1 << 20

// Source looks up the profile of the user an access token was issued to.
// A nil profile means the lookup failed; callers carry on without it.
type Source interface {
	Resolve(ctx context.Context, accessToken string) *UserProfile
}

// Resolver calls a profile lookup endpoint such as Microsoft Graph /me.
type Resolver struct {
	httpClient *http.Client
	profileURL string
}

var _ Source = (*Resolver)(nil)

func NewResolver(httpClient *http.Client, profileURL string) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Resolver{httpClient: httpClient, profileURL: profileURL}
}

// Resolve issues one authenticated GET. Every failure is logged and yields nil.
func (r *Resolver) Resolve(ctx context.Context, accessToken string) *UserProfile {
	if accessToken == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.profileURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", r.profileURL).Msg("profile: failed to build request")
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("profile: lookup failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("profile: lookup rejected")
		return nil
	}

	var p *UserProfile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBody)).Decode(&p); err != nil {
		log.Warn().Err(err).Msg("profile: malformed response body")
		return nil
	}
	if p != nil {
		log.Debug().Str("upn", utils.Value(p.UserPrincipalName)).Msg("profile: resolved")
	}
	return p
}
