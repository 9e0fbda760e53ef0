// Package xorcrack breaks single-byte and repeating-key XOR by scoring
// candidate plaintexts.
package xorcrack

import (
	"cryptoprobe/internal/crypto"
	"cryptoprobe/internal/score"
)

type Result struct {
	PlainText []byte
	Key       byte
	Score     int
}

// SingleByte tries every key byte. Ties keep the lowest key.
func SingleByte(ct []byte) Result {
	best := Result{PlainText: crypto.SingleByteXOR(ct, 0), Key: 0}
	best.Score = score.Common(best.PlainText)
	for k := 1; k <= 0xff; k++ {
		pt := crypto.SingleByteXOR(ct, byte(k))
		if s := score.Common(pt); s > best.Score {
			best = Result{PlainText: pt, Key: byte(k), Score: s}
		}
	}
	return best
}

// DetectSingleByte cracks every candidate and returns the best one with its
// 1-based index. Line is 0 when candidates is empty.
func DetectSingleByte(candidates [][]byte) (best Result, line int) {
	for i, ct := range candidates {
		r := SingleByte(ct)
		if line == 0 || r.Score > best.Score {
			best, line = r, i+1
		}
	}
	return best, line
}
