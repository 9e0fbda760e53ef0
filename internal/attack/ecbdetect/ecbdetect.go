// Package ecbdetect spots ECB ciphertexts by their repeated blocks.
package ecbdetect

// Score counts full blocks that repeat an earlier block.
func Score(ct []byte, blockSize int) int {
	if blockSize <= 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(ct)/blockSize)
	n := 0
	for off := 0; off+blockSize <= len(ct); off += blockSize {
		k := string(ct[off : off+blockSize])
		if _, ok := seen[k]; ok {
			n++
			continue
		}
		seen[k] = struct{}{}
	}
	return n
}

func IsECB(ct []byte, blockSize int) bool {
	return Score(ct, blockSize) > 0
}

type Result struct {
	Score int `json:"score"`
	Index int `json:"index"`
}

// Detect returns the 0-based index of the entry with the most repeated
// blocks. Score is 0 when no entry repeats.
func Detect(entries [][]byte, blockSize int) Result {
	var r Result
	for i, ct := range entries {
		if s := Score(ct, blockSize); s > r.Score {
			r = Result{Score: s, Index: i}
		}
	}
	return r
}
