package crypto

import "fmt"

const AlphabetSize = 26

type Shift int

const (
	ShiftRight Shift = iota
	ShiftLeft
)

func (s Shift) String() string {
	if s == ShiftLeft {
		return "left"
	}
	return "right"
}

// Caesar rotates ASCII letters by key positions, preserving case. Other bytes pass through.
func Caesar(data []byte, key int, shift Shift) ([]byte, error) {
	if key < 0 || key > AlphabetSize {
		return nil, fmt.Errorf("%w: key %d", ErrInvalidShift, key)
	}
	if shift == ShiftLeft {
		key = AlphabetSize - key
	}
	out := make([]byte, len(data))
	for i, c := range data {
		switch {
		case c >= 'A' && c <= 'Z':
			out[i] = byte((int(c-'A')+key)%AlphabetSize) + 'A'
		case c >= 'a' && c <= 'z':
			out[i] = byte((int(c-'a')+key)%AlphabetSize) + 'a'
		default:
			out[i] = c
		}
	}
	return out, nil
}
