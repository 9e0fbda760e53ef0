package ecbsuffix

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cryptoprobe/internal/oracle"
)

// RecoverByte tries every byte value in ascending order after prefix and
// returns the first whose leading ciphertext block equals target.
func RecoverByte(ctx context.Context, o oracle.Oracle, target, prefix []byte) (byte, error) {
	bs := len(target)
	if bs < MinBlockSize {
		return 0, misconfigured(StageRecover, "target block has %d bytes", bs)
	}
	probe := make([]byte, len(prefix)+1)
	copy(probe, prefix)
	last := len(prefix)

	for c := 0; c <= 0xff; c++ {
		if err := ctx.Err(); err != nil {
			return 0, &AttackError{Stage: StageRecover, Iteration: -1, Candidates: candidates(c), Err: ErrCancelled, Cause: err}
		}
		probe[last] = byte(c)
		ct, err := query(ctx, o, probe, StageRecover)
		if err != nil {
			var ae *AttackError
			if errors.As(err, &ae) {
				ae.Candidates = candidates(c + 1)
			}
			return 0, err
		}
		if len(ct) >= bs && bytes.Equal(ct[:bs], target) {
			return byte(c), nil
		}
	}
	return 0, &AttackError{Stage: StageRecover, Iteration: -1, Candidates: candidates(0x100), Err: ErrByteNotFound}
}

// candidates describes the probed range [0, n).
func candidates(n int) string {
	if n == 0 {
		return "none"
	}
	return fmt.Sprintf("0x00-0x%02x", n-1)
}
