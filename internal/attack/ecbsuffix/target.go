package ecbsuffix

import (
	"bytes"
	"context"

	"cryptoprobe/internal/oracle"
)

// ExtractTarget aligns the next unknown secret byte to the last position of
// a block and returns that ciphertext block.
func ExtractTarget(ctx context.Context, o oracle.Oracle, recovered []byte, blockSize int) ([]byte, error) {
	if blockSize < MinBlockSize {
		return nil, misconfigured(StageTarget, "block size %d is below %d", blockSize, MinBlockSize)
	}
	k := len(recovered)
	padding := bytes.Repeat([]byte{PaddingByte}, blockSize-k%blockSize-1)
	ct, err := query(ctx, o, padding, StageTarget)
	if err != nil {
		return nil, err
	}
	start := (k / blockSize) * blockSize
	if len(ct) < start+blockSize {
		return nil, misconfigured(StageTarget, "ciphertext has %d bytes, need block at %d", len(ct), start)
	}
	return bytes.Clone(ct[start : start+blockSize]), nil
}
