package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("pikachu123")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != keySize {
		t.Errorf("expected %d bytes, got %d", keySize, len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("pikachu123")

	if bytes.Equal(DeriveKey(password, []byte("salt-1")), DeriveKey(password, []byte("salt-2"))) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	h := HashPassword("pikachu123")

	assert.True(t, strings.HasPrefix(h, "argon2id$"))
	assert.NotContains(t, h, "pikachu123")

	ok, err := VerifyPassword(h, "pikachu123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(h, "pikachu124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	assert.NotEqual(t, HashPassword("same"), HashPassword("same"))
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []string{
		"",
		"cGlrYWNodTEyMw==",
		"bcrypt$abc$def",
		"argon2id$!!!$def",
		"argon2id$c2FsdA$c2hvcnQ",
	}
	for _, enc := range tests {
		t.Run(enc, func(t *testing.T) {
			ok, err := VerifyPassword(enc, "x")
			assert.ErrorIs(t, err, ErrMalformedHash)
			assert.False(t, ok)
		})
	}
}
