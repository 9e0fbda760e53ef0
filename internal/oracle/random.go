package oracle

import (
	"crypto/aes"
	"crypto/rand"
	"math/big"

	"cryptoprobe/internal/crypto"
)

// Mode is the block cipher mode picked by the random-mode oracle.
type Mode int

const (
	ModeECB Mode = iota
	ModeCBC
)

func (m Mode) String() string {
	if m == ModeCBC {
		return "CBC"
	}
	return "ECB"
}

const (
	junkMin = 5
	junkMax = 11 // exclusive
)

// EncryptRandomMode surrounds data with 5-10 random bytes on each side and
// encrypts it under a fresh key, in ECB or CBC with equal probability.
func EncryptRandomMode(data []byte) ([]byte, Mode, error) {
	coin, err := randIntn(2)
	if err != nil {
		return nil, 0, err
	}
	if coin == 0 {
		ct, err := EncryptRandomECB(data)
		return ct, ModeECB, err
	}
	ct, err := EncryptRandomCBC(data)
	return ct, ModeCBC, err
}

func EncryptRandomECB(data []byte) ([]byte, error) {
	key, err := crypto.RandomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}
	pt, err := surround(data)
	if err != nil {
		return nil, err
	}
	return crypto.EncryptECB(key, pt)
}

func EncryptRandomCBC(data []byte) ([]byte, error) {
	key, err := crypto.RandomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}
	iv, err := crypto.RandomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}
	pt, err := surround(data)
	if err != nil {
		return nil, err
	}
	return crypto.EncryptCBC(key, iv, pt)
}

func surround(data []byte) ([]byte, error) {
	pre, err := junk()
	if err != nil {
		return nil, err
	}
	post, err := junk()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(pre)+len(data)+len(post))
	out = append(out, pre...)
	out = append(out, data...)
	return append(out, post...), nil
}

func junk() ([]byte, error) {
	n, err := randIntn(junkMax - junkMin)
	if err != nil {
		return nil, err
	}
	return crypto.RandomBytes(junkMin + n)
}

func randIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
