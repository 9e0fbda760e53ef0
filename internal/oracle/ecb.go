package oracle

import (
	"context"
	"crypto/aes"
	"crypto/cipher"

	"cryptoprobe/internal/crypto"
)

// ECBSuffix encrypts prefix||secret in ECB mode with PKCS#7 padding under a
// key fixed at construction.
type ECBSuffix struct {
	block  cipher.Block
	suffix []byte
}

// NewECBSuffix uses a fresh random AES-128 key.
func NewECBSuffix(secret []byte) (*ECBSuffix, error) {
	key, err := crypto.RandomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}
	return NewECBSuffixWithKey(key, secret)
}

// NewECBSuffixWithKey uses AES with the given 16, 24 or 32 byte key.
func NewECBSuffixWithKey(key, secret []byte) (*ECBSuffix, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return NewECBSuffixWithCipher(block, secret), nil
}

// NewECBSuffixWithCipher accepts any block cipher, e.g. DES for an 8 byte block.
func NewECBSuffixWithCipher(block cipher.Block, secret []byte) *ECBSuffix {
	return &ECBSuffix{block: block, suffix: append([]byte(nil), secret...)}
}

func (o *ECBSuffix) EncryptWithPrefix(_ context.Context, prefix []byte) ([]byte, error) {
	pt := make([]byte, 0, len(prefix)+len(o.suffix))
	pt = append(pt, prefix...)
	pt = append(pt, o.suffix...)
	return crypto.EncryptECBWithCipher(o.block, pt)
}
