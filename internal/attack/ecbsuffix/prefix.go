package ecbsuffix

// BuildPrefix returns the blockSize-1 bytes that precede the next unknown
// byte inside its block: filler then everything recovered so far while the
// buffer is short, afterwards a sliding window over the recovered tail.
func BuildPrefix(recovered []byte, blockSize int) []byte {
	n := blockSize - 1
	out := make([]byte, 0, blockSize)
	if len(recovered) < n {
		for i := len(recovered); i < n; i++ {
			out = append(out, PaddingByte)
		}
		return append(out, recovered...)
	}
	return append(out, recovered[len(recovered)-n:]...)
}
