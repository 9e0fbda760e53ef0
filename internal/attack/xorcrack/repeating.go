package xorcrack

import (
	"sort"

	"cryptoprobe/internal/crypto"
)

type KeySize struct {
	Size  int     `json:"size"`
	Score float64 `json:"score"`
}

// KeySizes ranks key lengths in [min, max] by the Hamming distance between
// consecutive chunk pairs, normalised per byte. Lower is better; at most top
// sizes are returned. Sizes too large for a single pair are skipped.
func KeySizes(ct []byte, min, max, samples, top int) []KeySize {
	var out []KeySize
	for size := min; size <= max; size++ {
		if size <= 0 {
			continue
		}
		total, checked := 0, 0
		for off := 0; off+2*size <= len(ct) && checked < samples; off += 2 * size {
			total += crypto.HammingDistance(ct[off:off+size], ct[off+size:off+2*size])
			checked++
		}
		if checked == 0 {
			continue
		}
		out = append(out, KeySize{Size: size, Score: float64(total) / float64(checked) / float64(size)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

type RepeatingOptions struct {
	MinKeySize int
	MaxKeySize int
	Samples    int
	Top        int
}

func (o RepeatingOptions) withDefaults() RepeatingOptions {
	if o.MinKeySize <= 0 {
		o.MinKeySize = 2
	}
	if o.MaxKeySize <= 0 {
		o.MaxKeySize = 40
	}
	if o.Samples <= 0 {
		o.Samples = 5
	}
	if o.Top <= 0 {
		o.Top = 3
	}
	return o
}

type RepeatingResult struct {
	Key      []byte
	Score    int
	KeySizes []KeySize
}

// Repeating recovers a repeating XOR key: for each likely key size the
// ciphertext is split into columns, each column is a single-byte XOR, and the
// size whose columns score highest in total wins.
func Repeating(ct []byte, opts RepeatingOptions) RepeatingResult {
	opts = opts.withDefaults()
	res := RepeatingResult{KeySizes: KeySizes(ct, opts.MinKeySize, opts.MaxKeySize, opts.Samples, opts.Top)}
	for _, ks := range res.KeySizes {
		key := make([]byte, ks.Size)
		total := 0
		for i, col := range Transpose(ct, ks.Size) {
			r := SingleByte(col)
			key[i] = r.Key
			total += r.Score
		}
		if total > res.Score {
			res.Key, res.Score = key, total
		}
	}
	return res
}

// Transpose groups byte i of every full size-byte chunk into column i.
// A trailing partial chunk is dropped.
func Transpose(data []byte, size int) [][]byte {
	rows := len(data) / size
	out := make([][]byte, size)
	for i := range out {
		out[i] = make([]byte, 0, rows)
	}
	for r := 0; r < rows; r++ {
		for i := 0; i < size; i++ {
			out[i] = append(out[i], data[r*size+i])
		}
	}
	return out
}

