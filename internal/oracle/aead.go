package oracle

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"cryptoprobe/internal/crypto"
)

// AEADSuffix seals prefix||secret with XChaCha20-Poly1305 and a fresh nonce
// per call. Output is neither block aligned nor deterministic, so it is the
// negative control for the ECB attacks.
type AEADSuffix struct {
	key    []byte
	suffix []byte
}

func NewAEADSuffix(secret []byte) (*AEADSuffix, error) {
	key, err := crypto.RandomBytes(chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return NewAEADSuffixWithKey(key, secret)
}

func NewAEADSuffixWithKey(key, secret []byte) (*AEADSuffix, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("aead oracle: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &AEADSuffix{key: bytes.Clone(key), suffix: bytes.Clone(secret)}, nil
}

func (o *AEADSuffix) EncryptWithPrefix(_ context.Context, prefix []byte) ([]byte, error) {
	pt := make([]byte, 0, len(prefix)+len(o.suffix))
	pt = append(pt, prefix...)
	pt = append(pt, o.suffix...)
	return crypto.SealXChaCha(o.key, pt)
}
