package crypto

import (
	"encoding/hex"
	"fmt"
	"math/bits"
)

// FixedXOR xors two equal-length buffers.
func FixedXOR(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// XORMask applies mask to the start of data; bytes past the end of mask are copied unchanged.
func XORMask(data, mask []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		m := byte(0)
		if i < len(mask) {
			m = mask[i]
		}
		out[i] = data[i] ^ m
	}
	return out
}

func SingleByteXOR(data []byte, key byte) []byte {
	out := make([]byte, len(data))
	for i, c := range data {
		out[i] = c ^ key
	}
	return out
}

// RepeatingKeyXOR cycles key over data. An empty key returns a copy of data.
func RepeatingKeyXOR(data, key []byte) []byte {
	if len(key) == 0 {
		return append([]byte(nil), data...)
	}
	out := make([]byte, len(data))
	for i, c := range data {
		out[i] = c ^ key[i%len(key)]
	}
	return out
}

// XORHex decodes two hex strings, xors them and re-encodes the result.
func XORHex(a, b string) (string, error) {
	ab, err := hex.DecodeString(a)
	if err != nil {
		return "", err
	}
	bb, err := hex.DecodeString(b)
	if err != nil {
		return "", err
	}
	out, err := FixedXOR(ab, bb)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// HammingDistance counts differing bits over the shorter of the two inputs.
func HammingDistance(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	d := 0
	for i := 0; i < n; i++ {
		d += bits.OnesCount8(a[i] ^ b[i])
	}
	return d
}
