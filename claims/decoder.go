// Package claims extracts identity claims from a compact id token.
//
// Decoding is decode-only: the signature is not checked. A Verifier backed by
// the provider's JWKS can be configured instead when the deployment knows the
// provider's key set.
package claims

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Source yields the claims of a raw id token, or nil when none can be read.
// Implementations never fail the caller.
type Source interface {
	Claims(ctx context.Context, rawIDToken string) jwtlib.MapClaims
}

// Decoder reads claims without verifying the token.
type Decoder struct{}

var _ Source = Decoder{}

func (Decoder) Claims(_ context.Context, rawIDToken string) jwtlib.MapClaims {
	return Decode(rawIDToken)
}

var segmentParser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// Decode returns the payload of a three segment compact token as a claims map.
// Anything that is not three segments, or whose middle segment is not
// base64 encoded JSON object, yields nil.
func Decode(rawIDToken string) jwtlib.MapClaims {
	parts := strings.Split(rawIDToken, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		log.Debug().Err(err).Msg("claims: id token payload is not base64")
		return nil
	}

	var c jwtlib.MapClaims
	if err := json.Unmarshal(payload, &c); err != nil {
		log.Debug().Err(err).Msg("claims: id token payload is not a JSON object")
		return nil
	}
	return c
}

// decodeSegment pads the segment to a multiple of 4 and decodes it as
// base64url, falling back to the standard alphabet.
func decodeSegment(seg string) ([]byte, error) {
	b, err := segmentParser.DecodeSegment(seg)
	if err == nil {
		return b, nil
	}
	if l := len(seg) % 4; l > 0 {
		seg += strings.Repeat("=", 4-l)
	}
	if b, stdErr := base64.StdEncoding.DecodeString(seg); stdErr == nil {
		return b, nil
	}
	return nil, err
}

// FirstString returns the first non-empty string value found under keys.
func FirstString(c jwtlib.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := c[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
