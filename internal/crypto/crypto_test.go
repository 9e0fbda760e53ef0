package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedXOR(t *testing.T) {
	out, err := XORHex("1c0111001f010100061a024b53535009181c", "686974207468652062756c6c277320657965")
	require.NoError(t, err)
	require.Equal(t, "746865206b696420646f6e277420706c6179", out)

	_, err = FixedXOR([]byte{1}, []byte{1, 2})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestXORMask(t *testing.T) {
	out := XORMask([]byte{0x00, 0x01, 0x02}, []byte{0xff, 0x00})
	require.Equal(t, []byte{0xff, 0x01, 0x02}, out)
}

func TestRepeatingKeyXOR(t *testing.T) {
	in := "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal"
	want := "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272" +
		"a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"
	got := RepeatingKeyXOR([]byte(in), []byte("ICE"))
	require.Equal(t, want, hex.EncodeToString(got))
	require.Equal(t, []byte(in), RepeatingKeyXOR(got, []byte("ICE")))
}

func TestSingleByteXORInvolution(t *testing.T) {
	in := []byte("attack at dawn")
	require.Equal(t, in, SingleByteXOR(SingleByteXOR(in, 'X'), 'X'))
}

func TestHammingDistance(t *testing.T) {
	require.Equal(t, 37, HammingDistance([]byte("this is a test"), []byte("wokka wokka!!!")))
	require.Equal(t, 0, HammingDistance(nil, []byte("x")))
}

func TestPadPKCS7(t *testing.T) {
	tests := []struct {
		name      string
		in        []byte
		blockSize int
		want      []byte
	}{
		{"short block", []byte("YELLOW SUBMARINE"), 20, []byte("YELLOW SUBMARINE\x04\x04\x04\x04")},
		{"aligned adds full block", []byte{0, 0, 0}, 3, []byte{0, 0, 0, 3, 3, 3}},
		{"empty", nil, 4, []byte{4, 4, 4, 4}},
		{"one byte", []byte{0}, 3, []byte{0, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PadPKCS7(tt.in, tt.blockSize)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			back, err := UnpadPKCS7(got, tt.blockSize)
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.in, back))
		})
	}
}

func TestPadDoesNotAliasInput(t *testing.T) {
	in := make([]byte, 3, 16)
	_, err := PadPKCS7(in, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0}, in[:3])
	require.Equal(t, byte(0), in[:4][3])
}

func TestUnpadPKCS7Invalid(t *testing.T) {
	for _, in := range [][]byte{
		nil,
		[]byte("ICE ICE BABY\x05\x05\x05\x05"),
		[]byte("ICE ICE BABY\x01\x02\x03\x04"),
		[]byte("ICE ICE BABY\x04\x04\x04\x00"),
		[]byte("ICE ICE BABY\x04\x04\x04"),
		[]byte("ICE ICE BABY\x04\x04\x04\x11"),
	} {
		_, err := UnpadPKCS7(in, 16)
		require.ErrorIs(t, err, ErrInvalidPadding, "input %q", in)
	}
	out, err := UnpadPKCS7([]byte("ICE ICE BABY\x04\x04\x04\x04"), 16)
	require.NoError(t, err)
	require.Equal(t, "ICE ICE BABY", string(out))
}

func TestECBKnownVector(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	ct, err := EncryptECB(key, pt)
	require.NoError(t, err)
	require.Len(t, ct, 32)
	require.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(ct[:16]))
}

func TestECBRoundTrip(t *testing.T) {
	key := []byte("YELLOW SUBMARINE")
	for i := 0; i < 50; i++ {
		in, err := RandomBytes(i)
		require.NoError(t, err)
		ct, err := EncryptECB(key, in)
		require.NoError(t, err)
		require.Zero(t, len(ct)%16)
		out, err := DecryptECB(key, ct)
		require.NoError(t, err)
		require.True(t, bytes.Equal(in, out))
	}
}

func TestECBRepeatsBlocks(t *testing.T) {
	ct, err := EncryptECB([]byte("YELLOW SUBMARINE"), bytes.Repeat([]byte("A"), 32))
	require.NoError(t, err)
	require.Equal(t, ct[:16], ct[16:32])
}

func TestCBCRoundTrip(t *testing.T) {
	key := []byte("YELLOW SUBMARINE")
	iv := make([]byte, 16)
	for i := 0; i < 50; i++ {
		in, err := RandomBytes(i)
		require.NoError(t, err)
		ct, err := EncryptCBC(key, iv, in)
		require.NoError(t, err)
		out, err := DecryptCBC(key, iv, ct)
		require.NoError(t, err)
		require.True(t, bytes.Equal(in, out))
	}

	ct, err := EncryptCBC(key, iv, bytes.Repeat([]byte("A"), 32))
	require.NoError(t, err)
	require.NotEqual(t, ct[:16], ct[16:32])

	_, err = DecryptCBC(key, iv, ct[:15])
	require.ErrorIs(t, err, ErrBlockLength)
	_, err = EncryptCBC(key, iv[:8], nil)
	require.ErrorIs(t, err, ErrBlockLength)
}

func TestCaesar(t *testing.T) {
	out, err := Caesar([]byte("ABCD"), 1, ShiftRight)
	require.NoError(t, err)
	require.Equal(t, "BCDE", string(out))

	out, err = Caesar([]byte("BCDE"), 1, ShiftLeft)
	require.NoError(t, err)
	require.Equal(t, "ABCD", string(out))

	out, err = Caesar([]byte("xyz, XYZ!"), 3, ShiftRight)
	require.NoError(t, err)
	require.Equal(t, "abc, ABC!", string(out))

	_, err = Caesar([]byte("A"), 27, ShiftRight)
	require.ErrorIs(t, err, ErrInvalidShift)
}

func TestDeriveKey(t *testing.T) {
	a := DeriveKey([]byte("seed"), []byte("salt"), 16)
	b := DeriveKey([]byte("seed"), []byte("salt"), 16)
	c := DeriveKey([]byte("seed"), []byte("other"), 16)
	require.Len(t, a, 16)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestXChaChaRoundTrip(t *testing.T) {
	key, err := RandomBytes(32)
	require.NoError(t, err)
	a, err := SealXChaCha(key, []byte("secret"))
	require.NoError(t, err)
	b, err := SealXChaCha(key, []byte("secret"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	pt, err := OpenXChaCha(key, a)
	require.NoError(t, err)
	require.Equal(t, "secret", string(pt))

	a[len(a)-1] ^= 1
	_, err = OpenXChaCha(key, a)
	require.Error(t, err)
}

func TestUnpadPKCS7WrapsPaddingError(t *testing.T) {
	in := []byte("ICE ICE BABY\x01\x02\x03\x04")
	_, err := UnpadPKCS7(in, 16)
	require.ErrorIs(t, err, ErrInvalidPadding)
	require.ErrorContains(t, err, "crypto/padding")
	require.Equal(t, "ICE ICE BABY\x01\x02\x03\x04", string(in))

	_, err = UnpadPKCS7(bytes.Repeat([]byte{0x11}, 16), 16)
	require.ErrorIs(t, err, ErrInvalidPadding)
}
