// Package caesar recovers Caesar-shifted text by trying every rotation.
package caesar

import (
	"cryptoprobe/internal/crypto"
	"cryptoprobe/internal/score"
)

type Result struct {
	Score     int
	Key       int
	Shift     crypto.Shift
	PlainText []byte
}

// Crack rotates ct right by 0..26 and keeps the first highest-scoring result.
func Crack(ct []byte) Result {
	best := Result{Key: -1, Shift: crypto.ShiftRight}
	for key := 0; key <= crypto.AlphabetSize; key++ {
		pt, err := crypto.Caesar(ct, key, crypto.ShiftRight)
		if err != nil {
			continue
		}
		if s := score.Common(pt); best.Key < 0 || s > best.Score {
			best = Result{Score: s, Key: key, Shift: crypto.ShiftRight, PlainText: pt}
		}
	}
	return best
}
