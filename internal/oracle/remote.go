package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// EncryptRequest is the body of POST /encrypt.
type EncryptRequest struct {
	Prefix string `json:"prefix"` // base64
}

// EncryptResponse is the reply to POST /encrypt.
type EncryptResponse struct {
	Ciphertext string `json:"ciphertext"` // base64
}

// Remote queries an oracle served over HTTP by `cryptoprobe serve oracle`.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote returns a Remote for baseURL. A nil client means http.DefaultClient.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (r *Remote) EncryptWithPrefix(ctx context.Context, prefix []byte) ([]byte, error) {
	body, err := json.Marshal(EncryptRequest{Prefix: base64.StdEncoding.EncodeToString(prefix)})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/encrypt", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle %s: %s: %s", r.baseURL, resp.Status, strings.TrimSpace(string(raw)))
	}
	var out EncryptResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("oracle %s: bad response: %w", r.baseURL, err)
	}
	return base64.StdEncoding.DecodeString(out.Ciphertext)
}
