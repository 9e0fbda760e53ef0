package ecbdetect

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptoprobe/internal/oracle"
)

func TestScore(t *testing.T) {
	a := bytes.Repeat([]byte{'a'}, 4)
	b := bytes.Repeat([]byte{'b'}, 4)
	tests := []struct {
		name string
		ct   []byte
		want int
	}{
		{"empty", nil, 0},
		{"distinct", append(append([]byte{}, a...), b...), 0},
		{"one repeat", bytes.Join([][]byte{a, b, a}, nil), 1},
		{"triple", bytes.Join([][]byte{a, a, a, b}, nil), 2},
		{"partial tail ignored", append(append([]byte{}, a...), 'a', 'a'), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Score(tt.ct, 4))
		})
	}
	require.Zero(t, Score(a, 0))
}

func TestDetect(t *testing.T) {
	entries := [][]byte{
		[]byte("0123456789abcdef"),
		[]byte("YELLOW SUBMARINEYELLOW SUBMARINE"),
		[]byte("0123456789abcdefFEDCBA9876543210"),
	}
	r := Detect(entries, 16)
	require.Equal(t, Result{Score: 1, Index: 1}, r)
	require.Equal(t, Result{}, Detect(entries[:1], 16))
}

func TestRandomModeOracle(t *testing.T) {
	input := make([]byte, 64)

	ct, err := oracle.EncryptRandomCBC(input)
	require.NoError(t, err)
	require.False(t, IsECB(ct, 16))

	ct, err = oracle.EncryptRandomECB(input)
	require.NoError(t, err)
	require.True(t, IsECB(ct, 16))

	for i := 0; i < 50; i++ {
		ct, mode, err := oracle.EncryptRandomMode(input)
		require.NoError(t, err)
		require.Equal(t, mode == oracle.ModeECB, IsECB(ct, 16))
	}
}
