package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		r    time.Duration
		want string
	}{
		{"zero", 0, "Expired"},
		{"negative", -5 * time.Second, "Expired"},
		{"one second", time.Second, "1s"},
		{"seconds only", 59 * time.Second, "59s"},
		{"minute boundary", time.Minute, "1m 0s"},
		{"minutes and seconds", 61 * time.Second, "1m 1s"},
		{"just below the hour", 3599 * time.Second, "59m 59s"},
		{"hour boundary", time.Hour, "1h 0m"},
		{"just above the hour", 3601 * time.Second, "1h 0m"},
		{"seconds truncated above the hour", 2*time.Hour + 30*time.Minute + 59*time.Second, "2h 30m"},
		{"sub-second truncates to zero", 500 * time.Millisecond, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.r))
		})
	}
}

func TestCountdownTick(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expireAt := now.Add(90 * time.Second)
	c := NewCountdown(&expireAt)

	display, expired := c.Tick(now)
	assert.Equal(t, "1m 30s", display)
	assert.False(t, expired)

	display, expired = c.Tick(now.Add(89 * time.Second))
	assert.Equal(t, "1s", display)
	assert.False(t, expired)

	display, expired = c.Tick(now.Add(90 * time.Second))
	assert.Equal(t, "Expired", display)
	assert.True(t, expired)
}

func TestCountdownExpiredIsTerminal(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expireAt := now.Add(time.Second)
	c := NewCountdown(&expireAt)

	_, expired := c.Tick(now.Add(2 * time.Second))
	assert.True(t, expired)

	// A later tick with an earlier clock must not revive the countdown.
	display, expired := c.Tick(now)
	assert.Equal(t, "Expired", display)
	assert.True(t, expired)
	assert.True(t, c.Expired())
}

func TestCountdownWithoutExpiry(t *testing.T) {
	c := NewCountdown(nil)

	display, expired := c.Tick(time.Now())
	assert.Empty(t, display)
	assert.False(t, expired)
	assert.False(t, c.Expired())
}
