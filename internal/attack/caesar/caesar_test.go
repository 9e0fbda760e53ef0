package caesar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cryptoprobe/internal/crypto"
)

func TestCrack(t *testing.T) {
	tests := []struct {
		ct, want string
		key      int
	}{
		{"NOQBOO MBONSD DREWL DBSKV", "DEGREE CREDIT THUMB TRIAL", 16},
		{"SLCO HCLA QTMPC ETDDFP", "HARD WRAP FIBER TISSUE", 15},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := Crack([]byte(tt.ct))
			require.Equal(t, tt.want, string(r.PlainText))
			require.Equal(t, tt.key, r.Key)
			require.Equal(t, crypto.ShiftRight, r.Shift)
		})
	}
}

func TestCrackUndoesLeftShift(t *testing.T) {
	pt := []byte("it is a truth universally acknowledged")
	ct, err := crypto.Caesar(pt, 7, crypto.ShiftLeft)
	require.NoError(t, err)
	r := Crack(ct)
	require.Equal(t, pt, r.PlainText)
	require.Equal(t, 7, r.Key)
}

func TestCrackNoLetters(t *testing.T) {
	r := Crack([]byte("1234 5"))
	require.Zero(t, r.Key)
	require.Equal(t, "1234 5", string(r.PlainText))
}
