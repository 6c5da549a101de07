package realtime

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours minutes seconds", 2*time.Hour + 5*time.Minute + 3*time.Second, "2h 5m 3s"},
		{"hours with zero minutes", 7*time.Hour + 59*time.Second, "7h 0m 59s"},
		{"minutes and seconds", 5*time.Minute + 3*time.Second, "5m 3s"},
		{"exactly one minute", time.Minute, "1m 0s"},
		{"seconds only", 59 * time.Second, "59s"},
		{"one second", time.Second, "1s"},
		{"zero", 0, "Expired"},
		{"negative", -time.Minute, "Expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.duration))
		})
	}
}

func waitForTick(t *testing.T, ticks <-chan string) string {
	t.Helper()
	select {
	case v := <-ticks:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return ""
	}
}

func TestCountdown_TicksDownToExpiry(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ticks := make(chan string, 16)
	expiries := make(chan struct{}, 16)

	c := NewCountdown(fc, fc.Now().Add(3*time.Second),
		func(v string) { ticks <- v },
		func() { expiries <- struct{}{} },
	)
	c.Start()
	defer c.Stop()

	assert.Equal(t, "3s", waitForTick(t, ticks), "initial render happens on Start")

	fc.BlockUntil(1)
	fc.Advance(time.Second)
	assert.Equal(t, "2s", waitForTick(t, ticks))
	assert.Empty(t, expiries, "expiry must not fire before zero")

	fc.Advance(time.Second)
	assert.Equal(t, "1s", waitForTick(t, ticks))
	assert.Empty(t, expiries)

	fc.Advance(time.Second)
	assert.Equal(t, "Expired", waitForTick(t, ticks))

	select {
	case <-expiries:
	case <-time.After(2 * time.Second):
		t.Fatal("expiry callback did not fire at zero")
	}

	// The loop has exited; more time passing must not fire again.
	fc.Advance(10 * time.Second)
	select {
	case <-expiries:
		t.Fatal("expiry callback fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCountdown_AlreadyPastDeadline(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ticks := make(chan string, 1)
	var expired bool

	c := NewCountdown(fc, fc.Now().Add(-time.Minute),
		func(v string) { ticks <- v },
		func() { expired = true },
	)
	c.Start()

	assert.Equal(t, "Expired", waitForTick(t, ticks))
	assert.False(t, expired, "an already-past deadline has nothing to expire")

	c.Stop()
}

func TestCountdown_StopReleasesTicker(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ticks := make(chan string, 16)
	var expired bool

	c := NewCountdown(fc, fc.Now().Add(time.Hour),
		func(v string) { ticks <- v },
		func() { expired = true },
	)
	c.Start()
	require.Equal(t, "1h 0m 0s", waitForTick(t, ticks))

	fc.BlockUntil(1)
	c.Stop()
	// Idempotent.
	c.Stop()

	fc.Advance(2 * time.Hour)
	select {
	case v := <-ticks:
		t.Fatalf("tick %q after Stop", v)
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, expired, "a stopped countdown never expires")
}

func TestCountdown_NilCallbacks(t *testing.T) {
	fc := clockwork.NewFakeClock()

	c := NewCountdown(fc, fc.Now().Add(time.Second), nil, nil)
	c.Start()

	fc.BlockUntil(1)
	fc.Advance(time.Second)
	c.Stop()
}
