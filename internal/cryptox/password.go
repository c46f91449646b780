// Package cryptox holds password hashing for locally stored user records.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32
	scheme   = "argon2id"
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashPassword returns "argon2id$<salt>$<key>" with a fresh random salt,
// both parts in unpadded base64.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey([]byte(password), salt)

	enc := base64.RawStdEncoding
	return scheme + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key)
}

// VerifyPassword checks password against an encoded hash in constant time.
func VerifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return false, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil || len(want) != keySize {
		return false, ErrMalformedHash
	}

	got := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
