package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"trivia-client/internal/domain"
	"trivia-client/internal/game"
)

// Renderer writes the game surface as plain terminal lines. A mutex guards
// the writer because the countdown arrives from the ticker goroutine while
// everything else comes from the event loop.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer

	countdownOpen bool
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) ShowPhase(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	fmt.Fprintf(r.out, "\n== %s ==\n", label)
}

func (r *Renderer) ShowQuestion(q domain.Question, choices []game.ChoiceView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	if q.Category != "" {
		fmt.Fprintf(r.out, "[%s]\n", q.Category)
	}
	fmt.Fprintf(r.out, "%s\n", q.Text)
	for i, choice := range choices {
		marker := ""
		if choice.Disabled {
			marker = "  (locked)"
		}
		fmt.Fprintf(r.out, "  %d) %s%s\n", i+1, choice.Label, marker)
	}
}

func (r *Renderer) ShowReveal(rev domain.Reveal, choices []game.ChoiceView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	if rev.Category != "" {
		fmt.Fprintf(r.out, "[%s]\n", rev.Category)
	}
	fmt.Fprintf(r.out, "%s\n", rev.Text)
	for _, choice := range choices {
		mark := "✕"
		if choice.Correct {
			mark = "✓"
		}
		fmt.Fprintf(r.out, "  %s %s\n", mark, choice.Label)
	}
}

func (r *Renderer) ClearQuestion() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	fmt.Fprintln(r.out)
}

func (r *Renderer) ShowLeaderboard(rows []game.Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	fmt.Fprintln(r.out, "Leaderboard:")
	for i, row := range rows {
		marker := "  "
		if row.Self {
			marker = "* "
		}
		fmt.Fprintf(r.out, "%s%2d. %s — %d\n", marker, i+1, row.DisplayName, row.Score)
	}
}

func (r *Renderer) ShowResult(msg string) {
	if msg == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	fmt.Fprintf(r.out, "%s\n", msg)
}

func (r *Renderer) ShowJoinError(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakCountdownLocked()
	fmt.Fprintf(r.out, "Join failed: %s\n", reason)
}

// ShowCountdown repaints the remaining time in place.
func (r *Renderer) ShowCountdown(clock string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clock == "" {
		r.breakCountdownLocked()
		return
	}
	fmt.Fprintf(r.out, "\rTime left: %s ", clock)
	r.countdownOpen = true
}

// breakCountdownLocked terminates an in-place countdown line before other
// output so lines do not interleave on one row.
func (r *Renderer) breakCountdownLocked() {
	if r.countdownOpen {
		fmt.Fprint(r.out, strings.Repeat(" ", 2)+"\n")
		r.countdownOpen = false
	}
}
