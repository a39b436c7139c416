package spawn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lox/songbots/internal/bot"
)

// HTTPContinuer hands a session off by posting its payload to a resume
// endpoint. The response body is ignored; the resumed invocation rehydrates
// everything from the payload and a fresh snapshot, so there is nothing to
// wait for.
type HTTPContinuer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPContinuer creates a continuer targeting a /bots/resume endpoint.
func NewHTTPContinuer(endpoint string) *HTTPContinuer {
	return &HTTPContinuer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Continue implements bot.Continuer.
func (h *HTTPContinuer) Continue(ctx context.Context, s bot.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("continuation request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("continuation rejected with status %d", resp.StatusCode)
	}
	return nil
}
