// Package ecbsuffix recovers the secret an ECB oracle appends to attacker
// input, one byte per round, without learning the key.
package ecbsuffix

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"cryptoprobe/internal/oracle"
)

// Options tunes a Crack run. The zero value is ready to use.
type Options struct {
	// MaxBlockSize bounds size detection. Zero means MaxBlockSize.
	MaxBlockSize int
	Logger       hclog.Logger

	// OnByte is called after each recovered byte is appended.
	OnByte func(index int, b byte)
}

// Stats describes one attack run. OracleCalls is filled in on failure too.
type Stats struct {
	BlockSize   int `json:"block_size"`
	SecretLen   int `json:"secret_len"`
	OracleCalls int `json:"oracle_calls"`
}

// Crack runs the full attack and returns the recovered secret.
func Crack(ctx context.Context, o oracle.Oracle, opts Options) ([]byte, error) {
	out, _, err := CrackWithStats(ctx, o, opts)
	return out, err
}

// CrackWithStats is Crack plus run statistics. On any error the partial
// secret is discarded.
func CrackWithStats(ctx context.Context, o oracle.Oracle, opts Options) ([]byte, Stats, error) {
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	c := &counter{o: o}
	var st Stats
	fail := func(err error) ([]byte, Stats, error) {
		st.OracleCalls = c.n
		log.Debug("attack failed", "error", err, "oracle_calls", c.n)
		return nil, st, err
	}

	bs, n, err := DetectSizes(ctx, c, opts.MaxBlockSize)
	if err != nil {
		return fail(err)
	}
	st.BlockSize, st.SecretLen = bs, n
	if err := CheckECB(ctx, c, bs); err != nil {
		return fail(err)
	}
	log.Info("detected oracle parameters", "block_size", bs, "secret_len", n)

	recovered := make([]byte, 0, n)
	for len(recovered) < n {
		k := len(recovered)
		if err := cancelled(ctx, StageRecover); err != nil {
			return fail(atIteration(err, k))
		}
		prefix := BuildPrefix(recovered, bs)
		target, err := ExtractTarget(ctx, c, recovered, bs)
		if err != nil {
			return fail(atIteration(err, k))
		}
		b, err := RecoverByte(ctx, c, target, prefix)
		if err != nil {
			return fail(atIteration(err, k))
		}
		recovered = append(recovered, b)
		log.Trace("recovered byte", "index", k, "value", fmt.Sprintf("0x%02x", b))
		if opts.OnByte != nil {
			opts.OnByte(k, b)
		}
	}

	st.OracleCalls = c.n
	log.Info("recovered secret", "bytes", n, "oracle_calls", c.n)
	return recovered, st, nil
}

type counter struct {
	o oracle.Oracle
	n int
}

func (c *counter) EncryptWithPrefix(ctx context.Context, prefix []byte) ([]byte, error) {
	c.n++
	return c.o.EncryptWithPrefix(ctx, prefix)
}
