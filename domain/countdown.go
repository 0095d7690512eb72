package domain

import (
	"fmt"
	"time"
)

const ExpiredDisplay = "Expired"

// Countdown derives the remaining room lifetime from a fixed expiry
// timestamp. Once it reports expired it stays expired, even if a later
// tick observes an earlier clock. With no expiry set it produces no
// display value and never reaches the terminal state.
type Countdown struct {
	expireAt *time.Time
	expired  bool
}

func NewCountdown(expireAt *time.Time) *Countdown {
	return &Countdown{expireAt: expireAt}
}

// Tick recomputes the display value as of now and reports whether the
// countdown has reached its terminal state. The caller decides what to
// do on expiry; Tick only signals it.
func (c *Countdown) Tick(now time.Time) (string, bool) {
	if c.expireAt == nil {
		return "", false
	}
	if c.expired {
		return ExpiredDisplay, true
	}
	remaining := c.expireAt.Sub(now)
	if remaining <= 0 {
		c.expired = true
		return ExpiredDisplay, true
	}
	return FormatRemaining(remaining), false
}

func (c *Countdown) Expired() bool {
	return c.expired
}

// FormatRemaining picks exactly one display tier. Components are
// truncated, never rounded: 1h59m59s still reads "1h 59m".
func FormatRemaining(r time.Duration) string {
	switch {
	case r <= 0:
		return ExpiredDisplay
	case r >= time.Hour:
		h := int(r / time.Hour)
		m := int(r % time.Hour / time.Minute)
		return fmt.Sprintf("%dh %dm", h, m)
	case r >= time.Minute:
		m := int(r / time.Minute)
		s := int(r % time.Minute / time.Second)
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", int(r/time.Second))
	}
}
