// Package score ranks candidate plaintexts by how English-like they look.
package score

const commonChars = "AEIOUaeiou "

var common [256]bool

func init() {
	for i := 0; i < len(commonChars); i++ {
		common[commonChars[i]] = true
	}
}

// Common counts vowels and spaces. Higher is more likely to be English text.
func Common(data []byte) int {
	n := 0
	for _, c := range data {
		if common[c] {
			n++
		}
	}
	return n
}

// Printable is the fraction of data that is printable ASCII or common
// whitespace. Empty input scores 0.
func Printable(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	n := 0
	for _, c := range data {
		if (c >= 0x20 && c < 0x7f) || c == '\n' || c == '\r' || c == '\t' {
			n++
		}
	}
	return float64(n) / float64(len(data))
}
