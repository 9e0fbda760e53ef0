// Package serve exposes an oracle over HTTP so the attack can run against a
// separate process.
package serve

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"cryptoprobe/internal/oracle"
	"cryptoprobe/pkg/logx"
)

const maxBody = 1 << 20

type logLine struct {
	Time      time.Time `json:"time"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	PrefixLen int       `json:"prefix_len,omitempty"`
	Remote    string    `json:"remote"`
}

type handler struct {
	o   oracle.Oracle
	mu  sync.Mutex
	out io.Writer
}

// Handler serves POST /encrypt and GET /healthz. Every request is written to
// logw as one JSON line; a nil logw disables request logging.
func Handler(o oracle.Oracle, logw io.Writer) http.Handler {
	h := &handler{o: o, out: logw}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /encrypt", h.encrypt)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		h.log(r, http.StatusOK, 0)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

func (h *handler) encrypt(w http.ResponseWriter, r *http.Request) {
	var req oracle.EncryptRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}
	prefix, err := base64.StdEncoding.DecodeString(req.Prefix)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "prefix is not base64")
		return
	}
	ct, err := h.o.EncryptWithPrefix(r.Context(), prefix)
	if err != nil {
		logx.Errorf("oracle: %v", err)
		h.fail(w, r, http.StatusInternalServerError, "encryption failed")
		return
	}
	h.log(r, http.StatusOK, len(prefix))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(oracle.EncryptResponse{Ciphertext: base64.StdEncoding.EncodeToString(ct)})
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, code int, msg string) {
	h.log(r, code, 0)
	http.Error(w, msg, code)
}

func (h *handler) log(r *http.Request, status, prefixLen int) {
	if h.out == nil {
		return
	}
	ll := logLine{
		Time:      time.Now().UTC(),
		Method:    r.Method,
		Path:      r.URL.Path,
		Status:    status,
		PrefixLen: prefixLen,
		Remote:    r.RemoteAddr,
	}
	b, _ := json.Marshal(ll)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Write(append(b, '\n'))
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, o oracle.Oracle, logw io.Writer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return serveListener(ctx, ln, o, logw)
}

func serveListener(ctx context.Context, ln net.Listener, o oracle.Oracle, logw io.Writer) error {
	srv := &http.Server{Handler: Handler(o, logw), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	logx.Infof("oracle listening on %s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
