package oracle

import (
	"crypto/aes"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"cryptoprobe/internal/crypto"
)

// Kind names an in-process oracle implementation.
type Kind string

const (
	KindECB  Kind = "ecb"
	KindAEAD Kind = "aead"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindECB, KindAEAD:
		return k, nil
	case "":
		return KindECB, nil
	default:
		return "", fmt.Errorf("unknown oracle kind %q (want ecb or aead)", s)
	}
}

// Local builds an oracle that appends secret to every prefix. With an empty
// seed the key is random; otherwise it is derived from the seed so separate
// processes share it.
func Local(kind Kind, secret []byte, seed string) (Oracle, error) {
	switch kind {
	case KindECB, "":
		if seed == "" {
			return NewECBSuffix(secret)
		}
		return NewECBSuffixWithKey(seedKey(KindECB, seed, aes.BlockSize), secret)
	case KindAEAD:
		if seed == "" {
			return NewAEADSuffix(secret)
		}
		return NewAEADSuffixWithKey(seedKey(KindAEAD, seed, chacha20poly1305.KeySize), secret)
	default:
		return nil, fmt.Errorf("unknown oracle kind %q", kind)
	}
}

func seedKey(kind Kind, seed string, size int) []byte {
	return crypto.DeriveKey([]byte(seed), []byte("cryptoprobe-oracle-"+string(kind)), size)
}
