package ecbsuffix

import (
	"bytes"
	"context"

	"cryptoprobe/internal/oracle"
)

const (
	// PaddingByte is the filler used in every probe prefix.
	PaddingByte byte = 0x00

	// MinBlockSize rejects stream and AEAD constructions, whose output grows one byte at a time.
	MinBlockSize = 2

	// MaxBlockSize bounds size detection when Options leave it unset.
	MaxBlockSize = 256
)

// DetectSizes finds the block size and secret length from ciphertext
// lengths alone. It grows a filler prefix until the output length jumps; the
// jump is one block and the filler count at the jump fixes the secret length.
func DetectSizes(ctx context.Context, o oracle.Oracle, maxPad int) (blockSize, secretLen int, err error) {
	if maxPad <= 0 {
		maxPad = MaxBlockSize
	}
	ct, err := query(ctx, o, nil, StageDetect)
	if err != nil {
		return 0, 0, err
	}
	initLen := len(ct)

	pad := make([]byte, 0, maxPad)
	for len(pad) < maxPad {
		if err := cancelled(ctx, StageDetect); err != nil {
			return 0, 0, err
		}
		pad = append(pad, PaddingByte)
		ct, err := query(ctx, o, pad, StageDetect)
		if err != nil {
			return 0, 0, err
		}
		newLen := len(ct)
		switch {
		case newLen == initLen:
			continue
		case newLen < initLen:
			return 0, 0, misconfigured(StageDetect, "ciphertext shrank from %d to %d bytes", initLen, newLen)
		}
		blockSize = newLen - initLen
		if blockSize < MinBlockSize {
			return 0, 0, misconfigured(StageDetect, "output grew by %d byte(s), not a block cipher", blockSize)
		}
		if initLen%blockSize != 0 {
			return 0, 0, misconfigured(StageDetect, "ciphertext length %d is not a multiple of block size %d", initLen, blockSize)
		}
		return blockSize, initLen - len(pad), nil
	}
	return 0, 0, misconfigured(StageDetect, "ciphertext length stayed %d after %d padding bytes", initLen, maxPad)
}

// CheckECB confirms that two identical filler blocks encrypt identically.
func CheckECB(ctx context.Context, o oracle.Oracle, blockSize int) error {
	ct, err := query(ctx, o, bytes.Repeat([]byte{PaddingByte}, 2*blockSize), StageCheckECB)
	if err != nil {
		return err
	}
	if len(ct) < 2*blockSize || !bytes.Equal(ct[:blockSize], ct[blockSize:2*blockSize]) {
		return misconfigured(StageCheckECB, "identical plaintext blocks did not repeat")
	}
	return nil
}
