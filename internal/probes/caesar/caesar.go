package caesar

import (
	"context"
	"time"

	attack "cryptoprobe/internal/attack/caesar"
	"cryptoprobe/internal/report"
)

type Options struct {
	Texts []string
}

func Run(ctx context.Context, opt Options) (*report.Results, error) {
	r := report.NewResults("ciphertext", "caesar")
	for i, text := range opt.Texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := attack.Crack([]byte(text))
		status := report.Fail
		if res.Score == 0 {
			status = report.Inconclusive
		}
		r.Add(report.Finding{
			Name:     "Caesar shift recovery",
			Category: "Classical cipher",
			Severity: report.Low,
			Status:   status,
			Evidence: map[string]any{
				"target":     "caesar",
				"index":      i,
				"ciphertext": text,
				"key":        res.Key,
				"shift":      res.Shift.String(),
				"score":      res.Score,
				"plaintext":  string(res.PlainText),
			},
			Mitigations: []string{"A 26-key space is exhaustively searchable; use a modern cipher"},
			Timestamp:   time.Now().UTC(),
		})
	}
	return r, nil
}
