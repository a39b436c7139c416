package spawn

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func TestWindowLimiterQuota(t *testing.T) {
	mock := quartz.NewMock(t)
	l := NewWindowLimiter(2, time.Minute, mock)

	require.True(t, l.Allow())
	require.True(t, l.Allow())
	require.False(t, l.Allow())
}

func TestWindowLimiterResetsAfterWindow(t *testing.T) {
	mock := quartz.NewMock(t)
	l := NewWindowLimiter(1, time.Minute, mock)

	require.True(t, l.Allow())
	require.False(t, l.Allow())

	mock.Advance(30 * time.Second)
	require.False(t, l.Allow(), "mid-window requests stay rejected")

	mock.Advance(30 * time.Second)
	require.True(t, l.Allow(), "a fresh window restores the quota")
	require.False(t, l.Allow())
}

func TestWindowLimiterZeroQuotaRejectsEverything(t *testing.T) {
	mock := quartz.NewMock(t)
	l := NewWindowLimiter(0, time.Minute, mock)
	require.False(t, l.Allow())
}
