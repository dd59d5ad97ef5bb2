package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-todo-api/internal/model"
)

const minSecretLength = 32

// TokenAuthenticator mints and verifies HS256 bearer tokens. The signing key
// is fixed for the lifetime of the value; a new key invalidates every token
// minted under the old one.
type TokenAuthenticator struct {
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

type TokenOption func(*TokenAuthenticator)

// WithClock replaces time.Now for both minting and verification.
func WithClock(now func() time.Time) TokenOption {
	return func(a *TokenAuthenticator) {
		a.now = now
	}
}

func NewTokenAuthenticator(key []byte, opts ...TokenOption) (*TokenAuthenticator, error) {
	if len(key) == 0 {
		return nil, errors.New("token signing key is required")
	}

	a := &TokenAuthenticator{
		key: append([]byte(nil), key...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)

	return a, nil
}

// ValidateSecret rejects keys too short to be a meaningful HS256 secret.
func ValidateSecret(secret string) error {
	if len(strings.TrimSpace(secret)) < minSecretLength {
		return fmt.Errorf("signing secret must be at least %d characters", minSecretLength)
	}
	return nil
}

// Mint signs {sub, id, role, iat, exp, jti}. A non-positive ttl yields a token
// that is already expired.
func (a *TokenAuthenticator) Mint(subject string, userID int64, role string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("%w: subject is required", ErrInvalidArgument)
	}
	if userID <= 0 {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}

	now := a.now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.NewString(),
	}
	if role != "" {
		claims["role"] = role
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the identity the token
// carries. Errors are ErrInvalidSignature, ErrExpired or ErrMalformedClaims.
func (a *TokenAuthenticator) Verify(token string) (model.Identity, error) {
	parsed, err := a.parser.Parse(strings.TrimSpace(token), func(*jwt.Token) (interface{}, error) {
		return a.key, nil
	})
	if err != nil {
		return model.Identity{}, classifyParseError(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return model.Identity{}, ErrInvalidSignature
	}

	subject, _ := claims["sub"].(string)
	if strings.TrimSpace(subject) == "" {
		return model.Identity{}, fmt.Errorf("%w: sub", ErrMalformedClaims)
	}

	userID, ok := int64Claim(claims["id"])
	if !ok || userID <= 0 {
		return model.Identity{}, fmt.Errorf("%w: id", ErrMalformedClaims)
	}

	role, _ := claims["role"].(string)

	return model.Identity{Username: subject, ID: userID, Role: role}, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformedClaims, err)
	default:
		// Bad structure, foreign algorithm and tampering all land here.
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
}

func int64Claim(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
