package auth

import "errors"

// Internal failure kinds. These never leave the service layer as-is; callers
// outside it only ever see ErrAuthenticationFailed or ErrUnauthorized.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrAccountInactive  = errors.New("account inactive")

	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrMalformedClaims  = errors.New("malformed token claims")
)

// External signals.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnauthorized         = errors.New("could not validate credentials")
)

// ErrInvalidArgument is a caller bug (missing required input), so it is
// surfaced as-is instead of being collapsed.
var ErrInvalidArgument = errors.New("invalid argument")

// External maps an internal failure onto the single external signal for its
// family. Errors outside the taxonomy (storage outages, ErrInvalidArgument)
// pass through untouched.
func External(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrAccountInactive):
		return ErrAuthenticationFailed
	case errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrMalformedClaims):
		return ErrUnauthorized
	default:
		return err
	}
}

// Kind names the internal failure for logs and the audit trail.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrMalformedClaims):
		return "malformed_claims"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}
