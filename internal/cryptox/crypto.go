// Package cryptox derives the login verifier on the client. The password
// never leaves the machine: the server only sees a random salt and
// SHA-256(argon2id(password, salt)).
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates every stored verifier.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
)

// DeriveMasterKey stretches password with salt using argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// MakeVerifier is what the server stores and compares on login.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// LoginVerifier is MakeVerifier(DeriveMasterKey(password, salt)).
func LoginVerifier(password, salt []byte) []byte {
	return MakeVerifier(DeriveMasterKey(password, salt))
}
