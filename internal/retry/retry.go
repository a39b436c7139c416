// Package retry wraps outbound calls with bounded exponential backoff. It
// classifies failures into retryable (rate limits, server errors, transient
// network faults) and terminal (everything else), and never swallows a
// terminal error.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/coder/quartz"
)

// Config controls retry behaviour for a single wrapped call.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the backoff unit; attempt n sleeps BaseDelay * 2^n plus
	// up to half of BaseDelay of jitter.
	BaseDelay time.Duration

	// Clock is used for backoff sleeps. Defaults to the real clock.
	Clock quartz.Clock

	// Rand supplies jitter. Defaults to the shared math/rand source.
	Rand *rand.Rand
}

// DefaultConfig is suitable for game authority calls.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond}
}

// StatusError is an HTTP response outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Retryable reports whether err is worth retrying: a rate-limit response,
// a server-side failure, or a transient network error. Context cancellation
// is always terminal.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Code == 429 || status.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}

// Do runs op, retrying retryable failures with exponential backoff and jitter
// until it succeeds or attempts are exhausted. Terminal errors are returned
// immediately; exhausting attempts returns the last error.
func Do[T any](ctx context.Context, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !Retryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts-1 {
			break
		}
		if err := sleep(ctx, clock, backoff(cfg, attempt)); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

func backoff(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay << uint(attempt)
	jitterMax := int64(cfg.BaseDelay) / 2
	if jitterMax <= 0 {
		return delay
	}
	if cfg.Rand != nil {
		return delay + time.Duration(cfg.Rand.Int64N(jitterMax))
	}
	return delay + time.Duration(rand.Int64N(jitterMax))
}

func sleep(ctx context.Context, clock quartz.Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
