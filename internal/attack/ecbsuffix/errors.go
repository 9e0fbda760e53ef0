package ecbsuffix

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cryptoprobe/internal/oracle"
)

var (
	// ErrOracleMisconfigured means the oracle does not behave like
	// ECB-with-fixed-suffix: sizes never converge, blocks do not repeat, or
	// the ciphertext is too short.
	ErrOracleMisconfigured = errors.New("oracle misconfigured")

	// ErrByteNotFound means no candidate byte reproduced the target block.
	ErrByteNotFound = errors.New("byte not found")

	// ErrCancelled means the context ended before the secret was recovered.
	ErrCancelled = errors.New("attack cancelled")
)

// Stage names the step of the attack that was running when it failed.
type Stage string

const (
	StageDetect   Stage = "detect"
	StageCheckECB Stage = "check-ecb"
	StageTarget   Stage = "target"
	StageRecover  Stage = "recover"
)

// AttackError carries where an attack stopped. Iteration is -1 before
// recovery starts. Err is one of the package sentinels, or nil when Cause is
// an oracle transport failure.
type AttackError struct {
	Stage      Stage
	Iteration  int
	Candidates string
	Err        error
	Cause      error
}

func (e *AttackError) Error() string {
	var parts []string
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	} else {
		parts = append(parts, "oracle query failed")
	}
	parts = append(parts, "stage="+string(e.Stage))
	if e.Iteration >= 0 {
		parts = append(parts, fmt.Sprintf("iteration=%d", e.Iteration))
	}
	if e.Candidates != "" {
		parts = append(parts, "candidates="+e.Candidates)
	}
	msg := strings.Join(parts, " ")
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AttackError) Unwrap() []error {
	var out []error
	if e.Err != nil {
		out = append(out, e.Err)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

func misconfigured(stage Stage, format string, a ...any) error {
	return &AttackError{Stage: stage, Iteration: -1, Err: ErrOracleMisconfigured, Cause: fmt.Errorf(format, a...)}
}

func cancelled(ctx context.Context, stage Stage) error {
	if err := ctx.Err(); err != nil {
		return &AttackError{Stage: stage, Iteration: -1, Err: ErrCancelled, Cause: err}
	}
	return nil
}

// query calls the oracle and maps failures onto AttackError.
func query(ctx context.Context, o oracle.Oracle, prefix []byte, stage Stage) ([]byte, error) {
	ct, err := o.EncryptWithPrefix(ctx, prefix)
	if err == nil {
		return ct, nil
	}
	if ctx.Err() != nil {
		return nil, &AttackError{Stage: stage, Iteration: -1, Err: ErrCancelled, Cause: err}
	}
	return nil, &AttackError{Stage: stage, Iteration: -1, Cause: err}
}

func atIteration(err error, k int) error {
	var ae *AttackError
	if errors.As(err, &ae) {
		ae.Iteration = k
	}
	return err
}
