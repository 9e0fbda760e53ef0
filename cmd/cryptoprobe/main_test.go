package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cryptoprobe/internal/crypto"
	"cryptoprobe/internal/report"
)

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"ecb", "http://x"}, splitCSV(" ecb, ,http://x,"))
	require.Nil(t, splitCSV(""))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CPROBE_TEST_S", "v")
	t.Setenv("CPROBE_TEST_I", "7")
	t.Setenv("CPROBE_TEST_BAD", "x")
	t.Setenv("CPROBE_TEST_D", "3s")

	require.Equal(t, "v", env("CPROBE_TEST_S", "d"))
	require.Equal(t, "d", env("CPROBE_TEST_UNSET", "d"))
	require.Equal(t, 7, envInt("CPROBE_TEST_I", 1))
	require.Equal(t, 1, envInt("CPROBE_TEST_BAD", 1))
	require.Equal(t, 3*time.Second, envDuration("CPROBE_TEST_D", time.Second))
	require.Equal(t, time.Second, envDuration("CPROBE_TEST_BAD", time.Second))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProbeCaesarWritesReport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "r.json")
	html := filepath.Join(dir, "r.html")
	_, err := run(t, "probe", "caesar", "--out", out, "--html", html, "SLCO HCLA QTMPC ETDDFP")
	require.Equal(t, 2, exitCode(err))

	res, err := report.MergeJSONFiles([]string{out})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	_, err = os.Stat(html)
	require.NoError(t, err)
}

func TestProbeECBSuffixAEADPasses(t *testing.T) {
	out := filepath.Join(t.TempDir(), "r.json")
	_, err := run(t, "probe", "ecb-suffix", "--targets", "aead", "--out", out)
	require.NoError(t, err)
}

func TestProbeUsageErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "r.json")
	_, err := run(t, "probe", "xor-single", "--out", out)
	require.Equal(t, 3, exitCode(err))
	_, err = run(t, "probe", "ecb-suffix", "--targets", "rot13", "--out", out)
	require.Equal(t, 4, exitCode(err))
	_, err = run(t, "report")
	require.Equal(t, 3, exitCode(err))
}

func TestDecryptECB(t *testing.T) {
	ct, err := crypto.EncryptECB([]byte("YELLOW SUBMARINE"), []byte("I'm back and I'm ringin' the bell"))
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "ct.b64")
	require.NoError(t, os.WriteFile(file, []byte(base64.StdEncoding.EncodeToString(ct)), 0o644))

	out, err := run(t, "decrypt", "ecb", "--file", file, "--key", "YELLOW SUBMARINE")
	require.NoError(t, err)
	require.Equal(t, "I'm back and I'm ringin' the bell", out)

	_, err = run(t, "decrypt", "ecb", "--file", file, "--key", "short")
	require.Equal(t, 4, exitCode(err))
}

func TestDecryptCBC(t *testing.T) {
	iv := make([]byte, 16)
	ct, err := crypto.EncryptCBC([]byte("YELLOW SUBMARINE"), iv, []byte("hello cbc"))
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "ct.b64")
	require.NoError(t, os.WriteFile(file, []byte(base64.StdEncoding.EncodeToString(ct)), 0o644))

	out, err := run(t, "decrypt", "cbc", "--file", file, "--key", "YELLOW SUBMARINE")
	require.NoError(t, err)
	require.Equal(t, "hello cbc", out)
}
