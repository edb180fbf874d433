package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUnsignRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")

	for _, value := range []string{"abc", "550e8400-e29b-41d4-a716-446655440000", ""} {
		signed, err := signer.Sign(value)
		require.NoError(t, err)
		require.NotEqual(t, value, signed)

		got, ok := signer.Unsign(signed)
		assert.True(t, ok)
		assert.Equal(t, value, got)
	}
}

func TestUnsignRejectsTampering(t *testing.T) {
	signer := NewSigner("test-secret")

	signed, err := signer.Sign("session-id-1")
	require.NoError(t, err)

	// Flip a character in the payload segment
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, ok := signer.Unsign(tampered)
	assert.False(t, ok)
}

func TestUnsignRejectsWrongSecret(t *testing.T) {
	signed, err := NewSigner("secret-a").Sign("value")
	require.NoError(t, err)

	_, ok := NewSigner("secret-b").Unsign(signed)
	assert.False(t, ok)
}

func TestUnsignRejectsGarbage(t *testing.T) {
	signer := NewSigner("test-secret")

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, ok := signer.Unsign(garbage)
		assert.False(t, ok, "input %q", garbage)
	}
}
