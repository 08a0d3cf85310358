package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, 7*24*time.Hour)

	token, exp, err := codec.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	uid, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", uid)
}

func TestTokenExpired(t *testing.T) {
	// A negative TTL produces a token already past its expiry claim.
	codec := NewTokenCodec(testSecret, -time.Second)

	token, _, err := codec.Issue("user-42")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, _, err := codec.Issue("user-42")
	require.NoError(t, err)

	// Flipping any single character must invalidate the token.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := codec.Verify(string(b))
		assert.ErrorIs(t, err, ErrInvalidToken, "tampered at index %d", i)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	other := NewTokenCodec("a-different-secret", time.Hour)

	token, _, err := codec.Issue("user-42")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	for _, bad := range []string{"", "abc", "a.b.c"} {
		_, err := codec.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
