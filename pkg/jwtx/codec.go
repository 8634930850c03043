package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. All of them unwrap to ErrInvalidToken so
// callers can branch on the transport-level outcome (401) with a single
// errors.Is check while logs still carry the specific cause.
var (
	ErrInvalidToken = errors.New("jwtx: invalid token")

	ErrMalformed   = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrAlgMismatch = fmt.Errorf("%w: algorithm mismatch", ErrInvalidToken)
	ErrInvalidSig  = fmt.Errorf("%w: invalid signature", ErrInvalidToken)
	ErrIssuer      = fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
)

// ErrNoSecret reports a codec constructed without signing material.
var ErrNoSecret = errors.New("jwtx: signing secret is empty")

const alg = "HS256"

// Codec signs and verifies compact HS256 tokens with a single symmetric key.
// The key and issuer are deployment configuration.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec builds a Codec from the raw HMAC secret.
func NewCodec(secret []byte, issuer string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Codec{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact signed token from the claim set.
func (c *Codec) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and algorithm, then returns the claims.
// A malformed token, a token signed with a different algorithm, and a bad
// signature all fail with an error matching ErrInvalidToken.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{alg}),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if c.issuer != "" && claims.Issuer != c.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Covers both a bad HMAC and a disallowed signing method; the parser
		// folds the WithValidMethods rejection into this class.
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
