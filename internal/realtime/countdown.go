package realtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown mirrors a server-owned deadline locally. It emits a formatted
// remaining value once per second and fires a one-shot expiry callback when
// the remaining time reaches zero: never before it, never twice. The
// countdown never mutates parcel or bid state; expiry only triggers a
// refresh against the authoritative source.
type Countdown struct {
	clock    clockwork.Clock
	deadline time.Time
	onTick   func(remaining string)
	onExpire func()

	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
	started  bool

	expireOnce sync.Once
}

// NewCountdown creates a countdown toward the deadline. onTick receives the
// rendered remaining value; onExpire fires exactly once at zero. Either
// callback may be nil.
func NewCountdown(clock clockwork.Clock, deadline time.Time, onTick func(string), onExpire func()) *Countdown {
	return &Countdown{
		clock:    clock,
		deadline: deadline,
		onTick:   onTick,
		onExpire: onExpire,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins ticking. A deadline already in the past renders "Expired"
// immediately and does not fire the expiry callback; there is nothing left
// to expire.
func (c *Countdown) Start() {
	c.started = true

	remaining := c.deadline.Sub(c.clock.Now())
	if remaining <= 0 {
		c.tick(ExpiredLabel)
		close(c.doneCh)
		return
	}

	c.tick(FormatRemaining(remaining))
	go c.run()
}

func (c *Countdown) run() {
	defer close(c.doneCh)

	ticker := c.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.Chan():
			remaining := c.deadline.Sub(c.clock.Now())
			if remaining <= 0 {
				c.tick(ExpiredLabel)
				c.expireOnce.Do(func() {
					if c.onExpire != nil {
						c.onExpire()
					}
				})
				return
			}
			c.tick(FormatRemaining(remaining))
		}
	}
}

func (c *Countdown) tick(value string) {
	if c.onTick != nil {
		c.onTick(value)
	}
}

// Stop releases the ticker and waits for the tick loop to exit. Safe to
// call at any time, any number of times; a stopped countdown never fires
// the expiry callback afterwards.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	if c.started {
		<-c.doneCh
	}
}

// ExpiredLabel is the rendered value once the deadline has passed.
const ExpiredLabel = "Expired"

// FormatRemaining renders a duration as hours, minutes and seconds with
// leading zero units omitted: "2h 5m 3s", "5m 3s", "3s", "1m 0s". Zero or
// negative durations render as ExpiredLabel.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}

	total := int(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
