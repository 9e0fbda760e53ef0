package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const kdfIterations = 4096

// DeriveKey stretches a passphrase into a key of size bytes. The same passphrase
// and salt always give the same key, which is what makes seeded oracles reproducible.
func DeriveKey(passphrase, salt []byte, size int) []byte {
	return pbkdf2.Key(passphrase, salt, kdfIterations, size, sha256.New)
}
