package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestAuthenticator(t *testing.T, opts ...TokenOption) *TokenAuthenticator {
	t.Helper()

	a, err := NewTokenAuthenticator(testKey, opts...)
	require.NoError(t, err)
	return a
}

func signRaw(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)
	return signed
}

func TestNewTokenAuthenticatorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewTokenAuthenticator(nil)
	require.Error(t, err)
}

func TestMintAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	token, err := a.Mint("alice", 42, "admin", 20*time.Minute)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	identity, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "admin", identity.Role)
}

func TestMintRequiresSubjectAndUserID(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	_, err := a.Mint("", 5, "", time.Minute)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = a.Mint("   ", 5, "", time.Minute)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = a.Mint("alice", 0, "", time.Minute)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Caller bugs are not collapsed.
	assert.ErrorIs(t, External(err), ErrInvalidArgument)
}

func TestMintProducesDistinctTokens(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(t, WithClock(func() time.Time { return fixed }))

	first, err := a.Mint("alice", 1, "", time.Minute)
	require.NoError(t, err)
	second, err := a.Mint("alice", 1, "", time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, first[strings.LastIndex(first, ".")+1:], second[strings.LastIndex(second, ".")+1:])
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	t.Run("zero ttl is expired immediately", func(t *testing.T) {
		a := newTestAuthenticator(t)

		token, err := a.Mint("alice", 1, "", 0)
		require.NoError(t, err)

		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("negative ttl is expired", func(t *testing.T) {
		a := newTestAuthenticator(t)

		token, err := a.Mint("alice", 1, "", -time.Hour)
		require.NoError(t, err)

		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("valid until exp then expired without grace", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
		a := newTestAuthenticator(t, WithClock(func() time.Time { return now }))

		token, err := a.Mint("alice", 1, "", 20*time.Minute)
		require.NoError(t, err)

		now = now.Add(19*time.Minute + 59*time.Second)
		_, err = a.Verify(token)
		require.NoError(t, err)

		now = now.Add(time.Second)
		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestVerifyRejectsTamperedTokens(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	token, err := a.Mint("alice", 7, "user", time.Hour)
	require.NoError(t, err)

	headerEnd := strings.Index(token, ".")
	require.Positive(t, headerEnd)

	// Every byte of payload and signature, skipping the separator.
	for i := headerEnd + 1; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}

		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		identity, verifyErr := a.Verify(tampered)
		require.ErrorIs(t, verifyErr, ErrInvalidSignature, "position %d", i)
		require.Zero(t, identity, "position %d", i)
	}
}

func TestVerifyRejectsForeignKeysAndAlgorithms(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	t.Run("rotated key", func(t *testing.T) {
		rotated, err := NewTokenAuthenticator([]byte("another-secret-another-secret-xx"))
		require.NoError(t, err)

		token, err := rotated.Mint("alice", 1, "", time.Minute)
		require.NoError(t, err)

		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("HS512 with the same key", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "alice",
			"id":  1,
			"exp": time.Now().Add(time.Minute).Unix(),
		}).SignedString(testKey)
		require.NoError(t, err)

		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "alice",
			"id":  1,
			"exp": time.Now().Add(time.Minute).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = a.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.Verify("garbage-string")
		require.ErrorIs(t, err, ErrInvalidSignature)

		_, err = a.Verify("")
		require.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestVerifyRejectsMissingClaims(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "missing sub", claims: jwt.MapClaims{"id": 5, "exp": exp}},
		{name: "empty sub", claims: jwt.MapClaims{"sub": "", "id": 5, "exp": exp}},
		{name: "missing id", claims: jwt.MapClaims{"sub": "alice", "exp": exp}},
		{name: "string id", claims: jwt.MapClaims{"sub": "alice", "id": "5", "exp": exp}},
		{name: "fractional id", claims: jwt.MapClaims{"sub": "alice", "id": 5.5, "exp": exp}},
		{name: "missing exp", claims: jwt.MapClaims{"sub": "alice", "id": 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Verify(signRaw(t, tc.claims))
			require.ErrorIs(t, err, ErrMalformedClaims)
			assert.ErrorIs(t, External(err), ErrUnauthorized)
		})
	}
}

func TestValidateSecret(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateSecret("short"))
	require.NoError(t, ValidateSecret(string(testKey)))
}
