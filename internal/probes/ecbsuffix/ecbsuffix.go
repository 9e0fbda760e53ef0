package ecbsuffix

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	attack "cryptoprobe/internal/attack/ecbsuffix"
	"cryptoprobe/internal/oracle"
	"cryptoprobe/internal/report"
	"cryptoprobe/pkg/logx"
)

// DefaultSecret is appended by local oracles when no secret is given.
const DefaultSecret = "Um9sbGluJyBpbiBteSA1LjAKV2l0aCBteSByYWctdG9wIGRvd24gc28gbXkg" +
	"aGFpciBjYW4gYmxvdwpUaGUgZ2lybGllcyBvbiBzdGFuZGJ5IHdhdmluZyBq" +
	"dXN0IHRvIHNheSBoaQpEaWQgeW91IHN0b3A/IE5vLCBJIGp1c3QgZHJvdmUg" +
	"YnkK"

type Options struct {
	// Targets are "ecb", "aead" or http(s) URLs of served oracles.
	Targets      []string
	Secret       []byte
	KeySeed      string
	MaxBlockSize int
	DryRun       bool
	HTTPClient   *http.Client
	Logger       hclog.Logger
}

func Run(ctx context.Context, opt Options) (*report.Results, error) {
	if len(opt.Targets) == 0 {
		opt.Targets = []string{string(oracle.KindECB)}
	}
	secret := opt.Secret
	if secret == nil {
		s, err := base64.StdEncoding.DecodeString(DefaultSecret)
		if err != nil {
			return nil, err
		}
		secret = s
	}
	log := opt.Logger
	if log == nil {
		log = logx.Named("ecbsuffix")
	}

	r := report.NewResults("oracle", opt.Targets...)
	for _, target := range opt.Targets {
		o, local, err := build(target, secret, opt)
		if err != nil {
			return nil, err
		}
		if opt.DryRun {
			r.Notes = append(r.Notes, "dry run: "+target+" not queried")
			continue
		}
		f, err := probe(ctx, target, o, local, secret, opt.MaxBlockSize, log.With("target", target))
		r.Add(f)
		if err != nil {
			return r, err
		}
	}
	return r, nil
}

func build(target string, secret []byte, opt Options) (oracle.Oracle, bool, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return oracle.NewRemote(target, opt.HTTPClient), false, nil
	}
	kind, err := oracle.ParseKind(target)
	if err != nil {
		return nil, false, err
	}
	o, err := oracle.Local(kind, secret, opt.KeySeed)
	return o, true, err
}

// probe runs the attack against one target. The error is non-nil only when
// ctx ended; other failures are recorded in the finding.
func probe(ctx context.Context, target string, o oracle.Oracle, local bool, secret []byte, maxBS int, log hclog.Logger) (report.Finding, error) {
	rec := oracle.NewRecorder(o)
	got, st, err := attack.CrackWithStats(ctx, rec, attack.Options{MaxBlockSize: maxBS, Logger: log})
	ev := map[string]any{
		"target":       target,
		"block_size":   st.BlockSize,
		"secret_len":   st.SecretLen,
		"oracle_calls": st.OracleCalls,
		"transcript":   rec.Transcript(),
	}
	f := report.Finding{
		Name:     "ECB secret suffix recovery",
		Category: "Block cipher mode",
		Severity: report.High,
		Evidence: ev,
		Mitigations: []string{
			"Use an authenticated mode such as AES-GCM or ChaCha20-Poly1305 instead of ECB",
			"Do not encrypt secrets in the same message as attacker-controlled input",
		},
		Timestamp: time.Now().UTC(),
		Active:    true,
	}
	switch {
	case err == nil:
		f.Status = report.Fail
		ev["recovered_b64"] = base64.StdEncoding.EncodeToString(got)
		if local {
			ev["matches_secret"] = bytes.Equal(got, secret)
		}
	case errors.Is(err, attack.ErrOracleMisconfigured):
		f.Status = report.Pass
		ev["error"] = err.Error()
	case errors.Is(err, attack.ErrByteNotFound):
		f.Status = report.Inconclusive
		ev["error"] = err.Error()
	default:
		f.Status = report.Inconclusive
		ev["error"] = err.Error()
		if ctx.Err() != nil {
			log.Warn("attack interrupted", "error", err, "oracle_calls", st.OracleCalls)
			return f, err
		}
	}
	log.Info("probe finished", "status", f.Status, "oracle_calls", st.OracleCalls)
	return f, nil
}
