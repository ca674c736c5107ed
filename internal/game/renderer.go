package game

import "trivia-client/internal/domain"

// ChoiceView is one choice as displayed, listed in presentation order.
type ChoiceView struct {
	Label         string
	OriginalIndex int
	Disabled      bool
	Revealed      bool
	Correct       bool
}

// Renderer is the output surface the reconciler drives. Implementations must
// tolerate ShowCountdown being called from the ticker goroutine; everything
// else arrives from the single event-loop goroutine.
type Renderer interface {
	ShowPhase(label string)
	ShowQuestion(q domain.Question, choices []ChoiceView)
	ShowReveal(r domain.Reveal, choices []ChoiceView)
	ClearQuestion()
	ShowLeaderboard(rows []Row)
	ShowResult(msg string)
	ShowJoinError(reason string)
	ShowCountdown(clock string)
}
