package xor

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"cryptoprobe/internal/attack/xorcrack"
	"cryptoprobe/internal/crypto"
	"cryptoprobe/internal/report"
	"cryptoprobe/internal/score"
)

// minPrintable is the share of printable bytes above which a candidate
// plaintext counts as recovered.
const minPrintable = 0.95

type Options struct {
	// Lines are single-byte XOR candidates. One line is cracked directly;
	// several are searched for the one that decrypts to text.
	Lines [][]byte

	// Repeating is a repeating-key XOR ciphertext.
	Repeating []byte
	KeySizes  xorcrack.RepeatingOptions

	// Target labels the input in the report, e.g. a file name.
	Target string
}

func Run(ctx context.Context, opt Options) (*report.Results, error) {
	target := choose(opt.Target != "", opt.Target, "xor")
	r := report.NewResults("ciphertext", target)
	if len(opt.Lines) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Add(single(target, opt.Lines))
	}
	if len(opt.Repeating) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Add(repeating(target, opt.Repeating, opt.KeySizes))
	}
	if len(r.Findings) == 0 {
		return nil, fmt.Errorf("xor probe: no ciphertext given")
	}
	return r, nil
}

func single(target string, lines [][]byte) report.Finding {
	res, line := xorcrack.DetectSingleByte(lines)
	ok := res.Score > 0 && score.Printable(res.PlainText) >= minPrintable
	return report.Finding{
		Name:     "Single-byte XOR key recovery",
		Category: "XOR cipher",
		Severity: report.Medium,
		Status:   choose(ok, report.Fail, report.Inconclusive),
		Evidence: map[string]any{
			"target":    target,
			"lines":     len(lines),
			"line":      line,
			"key":       fmt.Sprintf("0x%02x", res.Key),
			"score":     res.Score,
			"plaintext": string(res.PlainText),
		},
		Mitigations: []string{"Replace XOR obfuscation with an authenticated cipher"},
		Timestamp:   time.Now().UTC(),
	}
}

func repeating(target string, ct []byte, opts xorcrack.RepeatingOptions) report.Finding {
	res := xorcrack.Repeating(ct, opts)
	ev := map[string]any{
		"target":    target,
		"key_sizes": res.KeySizes,
		"score":     res.Score,
	}
	ok := false
	if len(res.Key) > 0 {
		pt := crypto.RepeatingKeyXOR(ct, res.Key)
		ok = score.Printable(pt) >= minPrintable
		ev["key"] = string(res.Key)
		ev["key_hex"] = hex.EncodeToString(res.Key)
		ev["plaintext_prefix"] = string(pt[:min(len(pt), 80)])
	}
	return report.Finding{
		Name:        "Repeating-key XOR recovery",
		Category:    "XOR cipher",
		Severity:    report.Medium,
		Status:      choose(ok, report.Fail, report.Inconclusive),
		Evidence:    ev,
		Mitigations: []string{"Replace XOR obfuscation with an authenticated cipher", "Never reuse a short key stream"},
		Timestamp:   time.Now().UTC(),
	}
}

func choose[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
