// Package exchange runs the authorization code exchange pipeline:
// validate, exchange, resolve identity, reconcile.
package exchange

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-pkce-exchange/claims"
	"github.com/jrsteele09/go-pkce-exchange/identity"
	"github.com/jrsteele09/go-pkce-exchange/oauth2"
	"github.com/jrsteele09/go-pkce-exchange/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// State is a step of the exchange pipeline.
type State string

const (
	StateReceived        State = "received"
	StateValidated       State = "validated"
	StateExchanged       State = "exchanged"
	StateClaimsDecoded   State = "claims_decoded"
	StateProfileResolved State = "profile_resolved"
	StateReconciled      State = "reconciled"
	StateCompleted       State = "completed"
	StateErrored         State = "errored"
)

// TokenExchanger trades a validated grant for tokens.
type TokenExchanger interface {
	Exchange(ctx context.Context, grant oauth2.AuthorizationGrant) (oauth2.TokenSet, error)
}

// Settings are the client constants echoed in the result metadata.
type Settings struct {
	ClientID string
	Scope    string
	// BaseURL is used to derive the redirect URI when the caller omits one.
	BaseURL string
}

type Service struct {
	tokens   TokenExchanger
	claims   claims.Source
	profiles profile.Source
	settings Settings
	now      func() time.Time
}

func NewService(tokens TokenExchanger, claimsSource claims.Source, profiles profile.Source, settings Settings) *Service {
	if claimsSource == nil {
		claimsSource = claims.Decoder{}
	}
	return &Service{
		tokens:   tokens,
		claims:   claimsSource,
		profiles: profiles,
		settings: settings,
		now:      time.Now,
	}
}

// Exchange runs one exchange. Errors are *ValidationError, *token.ProviderError,
// *token.TransportError or *UnhandledError. Claim and profile failures never
// surface; they leave the matching identity fields nil.
func (s *Service) Exchange(ctx context.Context, grant oauth2.AuthorizationGrant) (result *Result, returnErr error) {
	exchangeID := uuid.NewString()
	logger := log.With().Str("exchange_id", exchangeID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("state", string(StateErrored)).Msg("exchange: recovered from panic")
			result = nil
			returnErr = &UnhandledError{Err: fmt.Errorf("panic: %v", r), Stack: string(debug.Stack())}
		}
	}()

	step(logger, StateReceived)
	if err := grant.Validate(); err != nil {
		step(logger, StateErrored)
		return nil, newValidationError(err)
	}
	grant = grant.WithDefaultRedirect(s.settings.BaseURL)
	step(logger, StateValidated)

	tokens, err := s.tokens.Exchange(ctx, grant)
	if err != nil {
		logger.Debug().Err(err).Str("state", string(StateErrored)).Msg("exchange: token request failed")
		return nil, err
	}
	step(logger, StateExchanged)

	idClaims, userProfile, err := s.resolveIdentity(ctx, logger, tokens)
	if err != nil {
		step(logger, StateErrored)
		return nil, err
	}

	user := identity.Reconcile(userProfile, idClaims)
	step(logger, StateReconciled)

	result = &Result{
		Success:     true,
		Message:     successMessage,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Email:       user.Email,
		EmailSource: user.EmailSource,
		Tokens:      tokens,
		User:        user,
		OAuth: Metadata{
			ExchangeID:      exchangeID,
			ClientID:        s.settings.ClientID,
			RedirectURI:     grant.RedirectURI,
			Scope:           s.settings.Scope,
			GrantType:       string(oauth2.AuthorizationCodeGrant),
			AuthMethod:      oauth2.AuthMethodPKCE,
			State:           grant.State,
			HasPKCE:         true,
			HasClientSecret: false,
		},
	}
	step(logger, StateCompleted)
	return result, nil
}

// resolveIdentity decodes the id token and looks up the profile concurrently.
// Only a panic in either branch is reported as an error.
func (s *Service) resolveIdentity(ctx context.Context, logger zerolog.Logger, tokens oauth2.TokenSet) (jwtlib.MapClaims, *profile.UserProfile, error) {
	var (
		idClaims    jwtlib.MapClaims
		userProfile *profile.UserProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() {
		if tokens.IDToken != nil {
			idClaims = s.claims.Claims(gctx, *tokens.IDToken)
		}
		logger.Debug().Bool("has_claims", idClaims != nil).Str("state", string(StateClaimsDecoded)).Msg("exchange: step")
	}))
	g.Go(guard(func() {
		if s.profiles != nil {
			userProfile = s.profiles.Resolve(gctx, tokens.AccessToken)
		}
		logger.Debug().Bool("has_profile", userProfile != nil).Str("state", string(StateProfileResolved)).Msg("exchange: step")
	}))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return idClaims, userProfile, nil
}

func guard(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &UnhandledError{Err: fmt.Errorf("panic: %v", r), Stack: string(debug.Stack())}
			}
		}()
		fn()
		return nil
	}
}

func step(logger zerolog.Logger, state State) {
	logger.Debug().Str("state", string(state)).Msg("exchange: step")
}
