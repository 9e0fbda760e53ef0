package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexToBase64(t *testing.T) {
	in := "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"
	out, err := HexToBase64(in)
	require.NoError(t, err)
	require.Equal(t, "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t", out)

	_, err = HexToBase64("zz")
	require.Error(t, err)
}

func TestReadBase64File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(p, []byte("SGVsbG8s\nIHdvcmxk\n"), 0o644))
	out, err := ReadBase64File(p)
	require.NoError(t, err)
	require.Equal(t, "Hello, world", string(out))
}

func TestReadHexLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(p, []byte("00ff\n\n6869\r\n"), 0o644))
	lines, err := ReadHexLines(p)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0x00, 0xff}, []byte("hi")}, lines)

	_, err = DecodeHexLines([]byte("00\nnothex\n"))
	require.ErrorContains(t, err, "line 2")
}
