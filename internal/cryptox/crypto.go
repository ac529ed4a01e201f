// Package cryptox holds the credential hashing used by the credential store.
//
// Secrets are never persisted. A credential keeps a random salt and the
// argon2id digest of the secret; verification recomputes the digest and
// compares in constant time.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"golang.org/x/crypto/argon2"
)

// AlgorithmArgon2id names the only hashing scheme written by this package.
const AlgorithmArgon2id = "argon2id"

// SaltSize is the length of the random salt generated per secret.
const SaltSize = 32

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveKey stretches secret with salt using argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashSecret generates a salt and returns it together with the digest of secret.
func HashSecret(secret []byte) (salt, hash []byte) {
	salt = NewSalt()
	return salt, DeriveKey(secret, salt)
}

// VerifySecret reports whether candidate hashes to hash under salt.
func VerifySecret(candidate, salt, hash []byte) bool {
	if len(hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(DeriveKey(candidate, salt), hash) == 1
}
