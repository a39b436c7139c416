package retry

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"
	"time"
)

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"rate limit", &StatusError{Code: 429}, true},
		{"server error", &StatusError{Code: 500}, true},
		{"bad gateway", &StatusError{Code: 502}, true},
		{"not found", &StatusError{Code: 404}, false},
		{"bad request", &StatusError{Code: 400}, false},
		{"conflict", &StatusError{Code: 409}, false},
		{"dns failure", &net.DNSError{Err: "no such host"}, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"context cancelled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.retryable {
			t.Errorf("%s: Retryable = %v, want %v", tc.name, got, tc.retryable)
		}
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Millisecond}

	attempts := 0
	result, err := Do(context.Background(), cfg, func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &StatusError{Code: 503}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoTerminalErrorStopsImmediately(t *testing.T) {
	cfg := Config{MaxAttempts: 5, BaseDelay: time.Millisecond}

	attempts := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		attempts++
		return 0, &StatusError{Code: 404}
	})

	var status *StatusError
	if !errors.As(err, &status) || status.Code != 404 {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (terminal errors must not retry)", attempts)
	}
}

func TestDoExhaustsAttemptsAndReturnsLastError(t *testing.T) {
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Millisecond}

	attempts := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		attempts++
		return 0, &StatusError{Code: 500, Body: "still broken"}
	})

	var status *StatusError
	if !errors.As(err, &status) || status.Code != 500 {
		t.Fatalf("expected the last 500 error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{MaxAttempts: 10, BaseDelay: 100 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := Do(ctx, cfg, func(ctx context.Context) (int, error) {
		attempts++
		return 0, &StatusError{Code: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts > 2 {
		t.Errorf("attempts = %d, cancellation should have stopped the backoff", attempts)
	}
}
