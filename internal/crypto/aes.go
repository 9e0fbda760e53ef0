package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/andreburgaud/crypt2go/ecb"
)

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// EncryptECBWithCipher pads pt with PKCS#7 and encrypts it block by block.
// Identical plaintext blocks give identical ciphertext blocks.
func EncryptECBWithCipher(block cipher.Block, pt []byte) ([]byte, error) {
	padded, err := PadPKCS7(pt, block.BlockSize())
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(padded))
	ecb.NewECBEncrypter(block).CryptBlocks(out, padded)
	return out, nil
}

// DecryptECBWithCipher reverses EncryptECBWithCipher.
func DecryptECBWithCipher(block cipher.Block, ct []byte) ([]byte, error) {
	bs := block.BlockSize()
	if len(ct) == 0 || len(ct)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d, block size %d", ErrBlockLength, len(ct), bs)
	}
	out := make([]byte, len(ct))
	ecb.NewECBDecrypter(block).CryptBlocks(out, ct)
	return UnpadPKCS7(out, bs)
}

func EncryptECB(key, pt []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return EncryptECBWithCipher(block, pt)
}

func DecryptECB(key, ct []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return DecryptECBWithCipher(block, ct)
}

// EncryptCBC pads pt and encrypts it with AES-CBC. The IV is not prepended.
func EncryptCBC(key, iv, pt []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv length %d", ErrBlockLength, len(iv))
	}
	padded, err := PadPKCS7(pt, block.BlockSize())
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func DecryptCBC(key, iv, ct []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(iv) != bs {
		return nil, fmt.Errorf("%w: iv length %d", ErrBlockLength, len(iv))
	}
	if len(ct) == 0 || len(ct)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d, block size %d", ErrBlockLength, len(ct), bs)
	}
	out := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ct)
	return UnpadPKCS7(out, bs)
}
