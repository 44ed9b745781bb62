package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateValidateRoundTrip(t *testing.T) {
	manager := NewJWTManager(testSecret, 24*time.Hour, "gatherly")

	token, err := manager.Generate("4f2d8c1e-9a41-4b8e-8c0f-3a5d6e7f8a9b")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "4f2d8c1e-9a41-4b8e-8c0f-3a5d6e7f8a9b", claims.Subject)
	require.Equal(t, "gatherly", claims.Issuer)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateRejectsEmptySubject(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, "gatherly")

	_, err := manager.Generate("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Minute, "gatherly")

	token, err := manager.Generate("user-1")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedToken(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, "gatherly")

	token, err := manager.Generate("user-1")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = manager.Validate(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, "gatherly")
	other := NewJWTManager("another-secret-another-secret-32", time.Hour, "gatherly")

	token, err := manager.Generate("user-1")
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformedInput(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, "gatherly")

	for _, input := range []string{"", "   ", "not-a-token", "a.b", "a.b.c.d", "\x00\x01\x02"} {
		_, err := manager.Validate(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := TokenFromHeader(header)
		require.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}
