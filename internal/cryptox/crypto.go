// Package cryptox hashes and verifies passwords for the stub authentication
// provider.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32

	hashScheme = "argon2id"
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// PasswordHash is a salted argon2id key.
type PasswordHash struct {
	Salt []byte
	Key  []byte
}

// HashPassword derives a PasswordHash with a fresh random salt.
func HashPassword(password []byte) PasswordHash {
	salt := common.GenerateRandByteArray(saltSize)
	return PasswordHash{Salt: salt, Key: DeriveKey(password, salt)}
}

// Verify reports whether password matches h. The comparison runs in
// constant time.
func (h PasswordHash) Verify(password []byte) bool {
	if len(h.Salt) == 0 || len(h.Key) == 0 {
		return false
	}
	candidate := DeriveKey(password, h.Salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(h.Key, candidate) == 1
}

// String encodes h as "argon2id$<salt>$<key>" with unpadded base64.
func (h PasswordHash) String() string {
	enc := base64.RawStdEncoding
	return hashScheme + "$" + enc.EncodeToString(h.Salt) + "$" + enc.EncodeToString(h.Key)
}

// ParsePasswordHash decodes the form produced by PasswordHash.String.
func ParsePasswordHash(s string) (PasswordHash, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return PasswordHash{}, ErrMalformedHash
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := enc.DecodeString(parts[2])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	if len(salt) == 0 || len(key) != keySize {
		return PasswordHash{}, ErrMalformedHash
	}
	return PasswordHash{Salt: salt, Key: key}, nil
}
