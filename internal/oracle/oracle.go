// Package oracle holds the black-box encryption functions the attacks query.
//
// An Oracle owns its key and secret; callers only ever see ciphertext.
package oracle

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sync"
)

// Oracle encrypts an attacker-chosen prefix together with whatever the
// implementation keeps hidden. Output must be deterministic per prefix for
// the lifetime of the oracle unless the implementation says otherwise.
type Oracle interface {
	EncryptWithPrefix(ctx context.Context, prefix []byte) ([]byte, error)
}

// Func adapts a plain function to Oracle.
type Func func(ctx context.Context, prefix []byte) ([]byte, error)

func (f Func) EncryptWithPrefix(ctx context.Context, prefix []byte) ([]byte, error) {
	return f(ctx, prefix)
}

// Recorder wraps an Oracle, counting calls and hashing the sequence of
// prefixes it was asked to encrypt. With Keep set it also retains them.
type Recorder struct {
	Keep bool

	o        Oracle
	mu       sync.Mutex
	calls    int
	digest   hash.Hash
	prefixes [][]byte
}

func NewRecorder(o Oracle) *Recorder {
	return &Recorder{o: o, digest: sha256.New()}
}

func (r *Recorder) EncryptWithPrefix(ctx context.Context, prefix []byte) ([]byte, error) {
	r.mu.Lock()
	r.calls++
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(prefix)))
	r.digest.Write(n[:])
	r.digest.Write(prefix)
	if r.Keep {
		r.prefixes = append(r.prefixes, bytes.Clone(prefix))
	}
	r.mu.Unlock()
	return r.o.EncryptWithPrefix(ctx, prefix)
}

func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Transcript returns the hex SHA-256 of every prefix seen so far, in order.
func (r *Recorder) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return hex.EncodeToString(r.digest.Sum(nil))
}

// Prefixes returns the retained prefixes. Empty unless Keep was set before use.
func (r *Recorder) Prefixes() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}
