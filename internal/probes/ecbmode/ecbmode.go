// Package ecbmode finds ECB-encrypted data by repeated blocks, either in
// captured ciphertexts or by querying the random-mode oracle.
package ecbmode

import (
	"context"
	"fmt"
	"time"

	"cryptoprobe/internal/attack/ecbdetect"
	"cryptoprobe/internal/oracle"
	"cryptoprobe/internal/report"
)

const DefaultBlockSize = 16

// probeInput is long enough that at least two aligned blocks of it survive
// up to a block of random junk on either side.
var probeInput = make([]byte, 4*DefaultBlockSize)

type Options struct {
	// Lines are ciphertexts to search for the ECB one.
	Lines     [][]byte
	BlockSize int

	// Samples is the number of random-mode oracle queries to classify.
	Samples int
	Target  string
}

func Run(ctx context.Context, opt Options) (*report.Results, error) {
	bs := opt.BlockSize
	if bs <= 0 {
		bs = DefaultBlockSize
	}
	target := opt.Target
	if target == "" {
		target = "ecb-mode"
	}
	r := report.NewResults("ciphertext", target)
	if len(opt.Lines) > 0 {
		res := ecbdetect.Detect(opt.Lines, bs)
		status := report.Pass
		if res.Score > 0 {
			status = report.Fail
		}
		r.Add(report.Finding{
			Name:     "ECB ciphertext detection",
			Category: "Block cipher mode",
			Severity: report.Medium,
			Status:   status,
			Evidence: map[string]any{
				"target":          target,
				"lines":           len(opt.Lines),
				"line":            res.Index + 1,
				"repeated_blocks": res.Score,
				"block_size":      bs,
			},
			Mitigations: []string{"Use a randomized mode such as CBC with random IVs, or an AEAD"},
			Timestamp:   time.Now().UTC(),
		})
	}
	if opt.Samples > 0 {
		f, err := classify(ctx, target, opt.Samples)
		if err != nil {
			return nil, err
		}
		r.Add(f)
	}
	if len(r.Findings) == 0 {
		return nil, fmt.Errorf("ecb-mode probe: no lines and no samples")
	}
	return r, nil
}

// classify asks the random-mode oracle to encrypt zeros and checks how often
// the mode can be told from the ciphertext alone.
func classify(ctx context.Context, target string, samples int) (report.Finding, error) {
	var correct, ecb, cbc int
	for i := 0; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			return report.Finding{}, err
		}
		ct, mode, err := oracle.EncryptRandomMode(probeInput)
		if err != nil {
			return report.Finding{}, err
		}
		guess := oracle.ModeCBC
		if ecbdetect.IsECB(ct, DefaultBlockSize) {
			guess = oracle.ModeECB
		}
		if guess == mode {
			correct++
		}
		if mode == oracle.ModeECB {
			ecb++
		} else {
			cbc++
		}
	}
	status := report.Inconclusive
	if correct == samples {
		status = report.Fail
	}
	return report.Finding{
		Name:     "Random mode oracle distinguisher",
		Category: "Block cipher mode",
		Severity: report.Medium,
		Status:   status,
		Evidence: map[string]any{
			"target":  target,
			"samples": samples,
			"correct": correct,
			"ecb":     ecb,
			"cbc":     cbc,
		},
		Mitigations: []string{"Never let callers choose plaintext for an ECB encryption"},
		Timestamp:   time.Now().UTC(),
		Active:      true,
	}, nil
}
