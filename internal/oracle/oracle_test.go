package oracle

import (
	"bytes"
	"context"
	"crypto/des"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptoprobe/internal/crypto"
)

func TestECBSuffixDeterministic(t *testing.T) {
	ctx := context.Background()
	o, err := NewECBSuffix([]byte("hidden"))
	require.NoError(t, err)

	a, err := o.EncryptWithPrefix(ctx, []byte("AAAA"))
	require.NoError(t, err)
	b, err := o.EncryptWithPrefix(ctx, []byte("AAAA"))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 16)

	c, err := o.EncryptWithPrefix(ctx, bytes.Repeat([]byte("A"), 32))
	require.NoError(t, err)
	require.Equal(t, c[:16], c[16:32])
}

func TestECBSuffixAppendsSecret(t *testing.T) {
	key := []byte("YELLOW SUBMARINE")
	o, err := NewECBSuffixWithKey(key, []byte("tail"))
	require.NoError(t, err)
	ct, err := o.EncryptWithPrefix(context.Background(), []byte("head-"))
	require.NoError(t, err)
	pt, err := crypto.DecryptECB(key, ct)
	require.NoError(t, err)
	require.Equal(t, "head-tail", string(pt))
}

func TestECBSuffixCopiesSecret(t *testing.T) {
	secret := []byte("abc")
	o, err := NewECBSuffixWithKey([]byte("YELLOW SUBMARINE"), secret)
	require.NoError(t, err)
	before, _ := o.EncryptWithPrefix(context.Background(), nil)
	secret[0] = 'z'
	after, _ := o.EncryptWithPrefix(context.Background(), nil)
	require.Equal(t, before, after)
}

func TestECBSuffixWithDES(t *testing.T) {
	block, err := des.NewCipher([]byte("8bytekey"))
	require.NoError(t, err)
	o := NewECBSuffixWithCipher(block, []byte("12345"))
	ct, err := o.EncryptWithPrefix(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, ct, 8)
}

func TestNewECBSuffixWithKeyRejectsBadKey(t *testing.T) {
	_, err := NewECBSuffixWithKey([]byte("short"), nil)
	require.Error(t, err)
}

func TestAEADSuffixNotDeterministic(t *testing.T) {
	o, err := NewAEADSuffix([]byte("hidden"))
	require.NoError(t, err)
	a, err := o.EncryptWithPrefix(context.Background(), []byte("x"))
	require.NoError(t, err)
	b, err := o.EncryptWithPrefix(context.Background(), []byte("x"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	c, err := o.EncryptWithPrefix(context.Background(), []byte("xx"))
	require.NoError(t, err)
	require.Equal(t, len(a)+1, len(c))
}

func TestEncryptRandomMode(t *testing.T) {
	seen := map[Mode]bool{}
	for i := 0; i < 64; i++ {
		ct, mode, err := EncryptRandomMode(make([]byte, 64))
		require.NoError(t, err)
		require.Zero(t, len(ct)%16)
		// 64 bytes plus 10..20 bytes of junk, padded.
		require.GreaterOrEqual(t, len(ct), 80)
		require.LessOrEqual(t, len(ct), 96)
		seen[mode] = true
	}
	require.True(t, seen[ModeECB])
	require.True(t, seen[ModeCBC])
	require.Equal(t, "ECB", ModeECB.String())
	require.Equal(t, "CBC", ModeCBC.String())
}

func TestRecorder(t *testing.T) {
	inner := Func(func(_ context.Context, prefix []byte) ([]byte, error) {
		return append([]byte("ct:"), prefix...), nil
	})
	a := NewRecorder(inner)
	a.Keep = true
	b := NewRecorder(inner)

	for _, p := range []string{"", "a", "ab"} {
		out, err := a.EncryptWithPrefix(context.Background(), []byte(p))
		require.NoError(t, err)
		require.Equal(t, "ct:"+p, string(out))
		_, _ = b.EncryptWithPrefix(context.Background(), []byte(p))
	}
	require.Equal(t, 3, a.Calls())
	require.Equal(t, a.Transcript(), b.Transcript())
	require.Equal(t, [][]byte{{}, []byte("a"), []byte("ab")}, a.Prefixes())
	require.Empty(t, b.Prefixes())

	_, _ = b.EncryptWithPrefix(context.Background(), []byte("abc"))
	require.NotEqual(t, a.Transcript(), b.Transcript())
}

func TestLocalSeeded(t *testing.T) {
	ctx := context.Background()
	a, err := Local(KindECB, []byte("hidden"), "seed")
	require.NoError(t, err)
	b, err := Local(KindECB, []byte("hidden"), "seed")
	require.NoError(t, err)
	c, err := Local(KindECB, []byte("hidden"), "other")
	require.NoError(t, err)

	ca, err := a.EncryptWithPrefix(ctx, []byte("x"))
	require.NoError(t, err)
	cb, err := b.EncryptWithPrefix(ctx, []byte("x"))
	require.NoError(t, err)
	cc, err := c.EncryptWithPrefix(ctx, []byte("x"))
	require.NoError(t, err)
	require.Equal(t, ca, cb)
	require.NotEqual(t, ca, cc)

	key := crypto.DeriveKey([]byte("seed"), []byte("cryptoprobe-oracle-ecb"), 16)
	pt, err := crypto.DecryptECB(key, ca)
	require.NoError(t, err)
	require.Equal(t, "xhidden", string(pt))
}

func TestLocalAEAD(t *testing.T) {
	o, err := Local(KindAEAD, []byte("hidden"), "seed")
	require.NoError(t, err)
	sealed, err := o.EncryptWithPrefix(context.Background(), []byte("x"))
	require.NoError(t, err)

	key := crypto.DeriveKey([]byte("seed"), []byte("cryptoprobe-oracle-aead"), 32)
	pt, err := crypto.OpenXChaCha(key, sealed)
	require.NoError(t, err)
	require.Equal(t, "xhidden", string(pt))

	_, err = NewAEADSuffixWithKey([]byte("short"), nil)
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindECB, "ecb": KindECB, "aead": KindAEAD} {
		k, err := ParseKind(in)
		require.NoError(t, err)
		require.Equal(t, want, k)
	}
	_, err := ParseKind("cbc")
	require.Error(t, err)
	_, err = Local("cbc", nil, "")
	require.Error(t, err)
}
