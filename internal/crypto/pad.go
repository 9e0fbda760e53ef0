package crypto

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/andreburgaud/crypt2go/padding"
)

var (
	ErrInvalidPadding = errors.New("invalid PKCS#7 padding")
	ErrBlockLength    = errors.New("invalid block length")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrInvalidShift   = errors.New("invalid caesar shift")
)

// PadPKCS7 appends 1..blockSize bytes of value n. A full block is added when
// data is already aligned. blockSize must be in 1..255.
func PadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 0xff {
		return nil, fmt.Errorf("%w: block size %d", ErrBlockLength, blockSize)
	}
	buf := make([]byte, len(data), len(data)+blockSize)
	copy(buf, data)
	return padding.NewPkcs7Padding(blockSize).Pad(buf)
}

// UnpadPKCS7 validates and strips PKCS#7 padding. data must be a non-empty
// multiple of blockSize.
func UnpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 0xff {
		return nil, fmt.Errorf("%w: block size %d", ErrBlockLength, blockSize)
	}
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPadding, len(data))
	}
	out, err := padding.NewPkcs7Padding(blockSize).Unpad(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPadding, err)
	}
	return out, nil
}
