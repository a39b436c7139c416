package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/songbots/internal/retry"
)

// ErrConflict is returned when the authority rejects an action as a
// duplicate: a song already claimed or a vote already cast. Callers treat it
// as non-fatal and degrade instead of retrying the same action.
var ErrConflict = errors.New("action rejected as duplicate")

// Client talks to the game authority over its REST API. All calls are
// wrapped with retry for rate limits, server errors and transient faults.
type Client struct {
	baseURL string
	gameID  string
	token   string
	http    *http.Client
	retry   retry.Config
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetry overrides the retry policy.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates an authenticated client bound to one game session.
func NewClient(baseURL, gameID, token string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: trimSlash(baseURL),
		gameID:  gameID,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		retry:   retry.DefaultConfig(),
		logger:  logger.WithPrefix("gameapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register joins a game by code and returns the issued bot credentials. It
// is the only unauthenticated call; the spawn path owns its retry policy.
func Register(ctx context.Context, baseURL string, cfg retry.Config, gameCode, botName string) (*Registration, error) {
	body := map[string]string{"gameCode": gameCode, "name": botName}
	return retry.Do(ctx, cfg, func(ctx context.Context) (*Registration, error) {
		var reg Registration
		if err := doJSON(ctx, http.DefaultClient, http.MethodPost, trimSlash(baseURL)+"/api/games/register", "", body, &reg); err != nil {
			return nil, err
		}
		return &reg, nil
	})
}

// Snapshot fetches the authoritative game state.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	return retry.Do(ctx, c.retry, func(ctx context.Context) (*Snapshot, error) {
		var snap Snapshot
		if err := c.do(ctx, http.MethodGet, c.gamePath(""), nil, &snap); err != nil {
			return nil, err
		}
		return &snap, nil
	})
}

// Ready signals that this bot is ready to play.
func (c *Client) Ready(ctx context.Context) error {
	return c.post(ctx, c.gamePath("/ready"), map[string]any{})
}

// SubmitSong submits a catalog song as this round's answer.
func (c *Client) SubmitSong(ctx context.Context, songID string) error {
	return c.post(ctx, c.gamePath("/submissions"), map[string]any{"songId": songID})
}

// Pass submits an explicit pass for this round.
func (c *Client) Pass(ctx context.Context) error {
	return c.post(ctx, c.gamePath("/submissions"), map[string]any{"pass": true})
}

// Vote casts this bot's vote for a submission.
func (c *Client) Vote(ctx context.Context, submissionID string) error {
	return c.post(ctx, c.gamePath("/votes"), map[string]any{"submissionId": submissionID})
}

// SetNextQuestion proposes the next round's question.
func (c *Client) SetNextQuestion(ctx context.Context, q Question) error {
	return c.post(ctx, c.gamePath("/next-question"), q)
}

// SearchCatalog queries the song catalog. Failures degrade to an empty
// result list so matching can continue with other candidates.
func (c *Client) SearchCatalog(ctx context.Context, query string, limit int) ([]CatalogEntry, error) {
	path := "/api/catalog/search?q=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)
	results, err := retry.Do(ctx, c.retry, func(ctx context.Context) ([]CatalogEntry, error) {
		var out struct {
			Results []CatalogEntry `json:"results"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		return out.Results, nil
	})
	if err != nil {
		c.logger.Warn("catalog search failed", "query", query, "error", err)
		return []CatalogEntry{}, nil
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	_, err := retry.Do(ctx, c.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.do(ctx, http.MethodPost, path, body, nil)
	})
	return err
}

func (c *Client) gamePath(suffix string) string {
	return "/api/games/" + url.PathEscape(c.gameID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return doJSON(ctx, c.http, method, c.baseURL+path, c.token, body, out)
}

func doJSON(ctx context.Context, client *http.Client, method, url, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		io.Copy(io.Discard, resp.Body)
		return ErrConflict
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
