package game

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type displayCapture struct {
	mu   sync.Mutex
	last string
}

func (d *displayCapture) set(s string) {
	d.mu.Lock()
	d.last = s
	d.mu.Unlock()
}

func (d *displayCapture) get() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *displayCapture) waitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if d.get() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected display %q, got %q", want, d.get())
}

func TestTickerRendersFromDeadlineNotDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	capture := &displayCapture{}
	ticker := NewTicker(clock, 250*time.Millisecond, capture.set)
	defer ticker.Stop()

	ticker.Start(clock.Now().Add(5 * time.Second))
	if got := capture.get(); got != "00:05" {
		t.Fatalf("expected immediate 00:05, got %q", got)
	}

	clock.BlockUntil(1)
	clock.Advance(5 * time.Second)
	capture.waitFor(t, "00:00")
}

func TestTickerRestartReplacesDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	capture := &displayCapture{}
	ticker := NewTicker(clock, 250*time.Millisecond, capture.set)
	defer ticker.Stop()

	ticker.Start(clock.Now().Add(10 * time.Second))
	if got := capture.get(); got != "00:10" {
		t.Fatalf("expected 00:10, got %q", got)
	}

	// Restart must cancel the prior interval before starting the next.
	ticker.Start(clock.Now().Add(3 * time.Second))
	if got := capture.get(); got != "00:03" {
		t.Fatalf("expected 00:03 after restart, got %q", got)
	}
}

func TestTickerStopSilencesDisplay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	capture := &displayCapture{}
	ticker := NewTicker(clock, 250*time.Millisecond, capture.set)

	ticker.Start(clock.Now().Add(10 * time.Second))
	clock.BlockUntil(1)
	ticker.Stop()

	// Give the run goroutine time to observe the stop before ticking.
	time.Sleep(100 * time.Millisecond)
	before := capture.get()
	clock.Advance(time.Second)
	time.Sleep(100 * time.Millisecond)
	if got := capture.get(); got != before {
		t.Fatalf("expected no updates after stop, got %q -> %q", before, got)
	}
}

func TestTickerZeroDeadlineClearsDisplay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	capture := &displayCapture{last: "00:09"}
	ticker := NewTicker(clock, 250*time.Millisecond, capture.set)

	ticker.Start(time.Time{})
	if got := capture.get(); got != "" {
		t.Fatalf("expected cleared display, got %q", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{5 * time.Second, "00:05"},
		{4900 * time.Millisecond, "00:05"}, // partial seconds round up
		{65 * time.Second, "01:05"},
		{0, "00:00"},
		{-3 * time.Second, "00:00"}, // clamped, never negative
	}
	for _, tc := range cases {
		if got := FormatRemaining(tc.remaining); got != tc.want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", tc.remaining, got, tc.want)
		}
	}
}
