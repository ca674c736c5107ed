package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTickPeriod is the countdown re-render interval.
const DefaultTickPeriod = 250 * time.Millisecond

// Ticker renders a countdown against an absolute server deadline. Remaining
// time is recomputed from the deadline on every tick, never from an initial
// duration, so late event delivery cannot desynchronize the display.
type Ticker struct {
	clock   clockwork.Clock
	period  time.Duration
	display func(string)

	mu   sync.Mutex
	stop chan struct{}
}

// NewTicker builds a ticker that reports formatted remaining time through
// display. A non-positive period falls back to DefaultTickPeriod.
func NewTicker(clock clockwork.Clock, period time.Duration, display func(string)) *Ticker {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &Ticker{clock: clock, period: period, display: display}
}

// Start begins ticking toward deadline. Any previous run is stopped first,
// so at most one interval is ever active. A zero deadline clears the display
// and leaves the ticker idle.
func (t *Ticker) Start(deadline time.Time) {
	t.mu.Lock()
	t.stopLocked()
	if deadline.IsZero() {
		t.mu.Unlock()
		t.display("")
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	t.display(FormatRemaining(deadline.Sub(t.clock.Now())))
	go t.run(deadline, stop)
}

// Stop cancels the active run, if any.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Ticker) run(deadline time.Time, stop chan struct{}) {
	ticker := t.clock.NewTicker(t.period)
	defer ticker.Stop()
	for {
		// Stop wins over a pending tick, so a cancelled run never paints
		// over its replacement.
		select {
		case <-stop:
			return
		default:
		}
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			t.display(FormatRemaining(deadline.Sub(t.clock.Now())))
		}
	}
}

// FormatRemaining renders a duration as MM:SS, rounding partial seconds up
// and clamping at zero.
func FormatRemaining(remaining time.Duration) string {
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
