package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"trivia-client/internal/domain"
)

// AnswerSender delivers the one-shot answer submission upstream. Sends are
// fire-and-forget: the gate closes before the send and stays closed whatever
// the result.
type AnswerSender interface {
	SendAnswer(questionID string, choiceIndex int) error
}

// Reconciler is the client-side game state machine. It reconciles local UI
// state against out-of-order or duplicated server events while keeping the
// per-question answer gate and presentation order stable.
//
// Callers must serialize all method calls; the session runner's event loop
// does exactly that.
type Reconciler struct {
	rnd      *rand.Rand
	renderer Renderer
	sender   AnswerSender
	ticker   *Ticker

	phase   domain.Phase
	self    domain.Self
	current *domain.Question
	order   Order
	gate    Gate
	board   []domain.LeaderboardEntry
}

// NewReconciler builds a reconciler in the Unjoined phase. A nil rnd gets a
// time-seeded source.
func NewReconciler(rnd *rand.Rand, renderer Renderer, sender AnswerSender, ticker *Ticker) *Reconciler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Reconciler{
		rnd:      rnd,
		renderer: renderer,
		sender:   sender,
		ticker:   ticker,
		phase:    domain.PhaseUnjoined,
	}
}

// Phase returns the current machine phase.
func (r *Reconciler) Phase() domain.Phase {
	return r.phase
}

// Self returns the joined participant identity; zero before a join.
func (r *Reconciler) Self() domain.Self {
	return r.self
}

// HandleJoined (re)initializes the machine from a join acknowledgement,
// including after a reconnect re-join. The snapshot's declared phase decides
// where the machine lands; the inherited lock seeds the answer gate.
func (r *Reconciler) HandleJoined(snap domain.JoinSnapshot) {
	r.self = snap.Self
	r.gate = NewGate(snap.Self.LockedUntilQuestionID)
	r.order = Order{}
	r.current = nil
	r.HandleLeaderboard(snap.Leaderboard)

	switch {
	case snap.Phase == domain.PhaseQuestion && snap.Question != nil:
		r.showQuestion(*snap.Question)
	case snap.Phase == domain.PhaseReveal && snap.Reveal != nil:
		r.showReveal(*snap.Reveal)
	default:
		r.enterWaiting()
	}
}

// HandleJoinRejected surfaces the server's reason verbatim. The machine does
// not move; the user may retry with a different name.
func (r *Reconciler) HandleJoinRejected(reason string) {
	r.renderer.ShowJoinError(reason)
}

// HandleQuestion processes a question event from any phase.
func (r *Reconciler) HandleQuestion(q domain.Question) {
	r.showQuestion(q)
}

// HandleReveal processes a reveal event. Inputs are disabled, the countdown
// stops, and each choice is marked by comparing its original index to the
// disclosed correct index.
func (r *Reconciler) HandleReveal(rev domain.Reveal) {
	r.showReveal(rev)
}

// HandleLeaderboard re-renders the scoreboard from the latest snapshot.
func (r *Reconciler) HandleLeaderboard(entries []domain.LeaderboardEntry) {
	r.board = entries
	r.renderer.ShowLeaderboard(LeaderboardRows(entries, r.self.UserID))
}

// HandleAnswerOutcome updates the result message and, when included, the
// leaderboard. It never changes phase, and a rejection never reopens the
// gate: the user does not get a second attempt even on failure.
func (r *Reconciler) HandleAnswerOutcome(out domain.AnswerOutcome) {
	if !out.OK {
		msg := out.Reason
		if msg == "" {
			msg = "Unable to submit."
		}
		r.renderer.ShowResult(msg)
		return
	}

	var msg string
	if out.Correct {
		msg = fmt.Sprintf("Correct! +%d points", out.Points)
		if out.RankWord != "" {
			msg += fmt.Sprintf(" (You were the %s person to answer correctly)", out.RankWord)
		} else if out.Rank > 0 {
			msg += fmt.Sprintf(" (rank #%d)", out.Rank)
		}
	} else {
		msg = "Not quite. Better luck on the next one!"
	}
	if out.Humor != "" {
		msg += " " + out.Humor
	}
	r.renderer.ShowResult(msg)

	if out.Leaderboard != nil {
		r.HandleLeaderboard(out.Leaderboard)
	}
}

// SubmitAnswer submits the choice at the given display position. At most one
// submission is produced per question; the gate closes before the send so a
// lost or rejected message can never be retried.
func (r *Reconciler) SubmitAnswer(displayPos int) error {
	if r.phase == domain.PhaseUnjoined {
		return domain.ErrNotJoined
	}
	if r.phase != domain.PhaseQuestion || r.current == nil {
		return domain.ErrNoActiveQuestion
	}
	if displayPos < 0 || displayPos >= len(r.order.Positions) {
		return domain.ErrChoiceOutOfRange
	}
	if r.gate.Answered() {
		return domain.ErrAlreadyAnswered
	}
	if r.gate.LockedFor(r.current.ID) {
		return domain.ErrAnswerLocked
	}

	original := r.order.Positions[displayPos]
	r.gate = r.gate.RecordAnswered()
	r.renderer.ShowQuestion(*r.current, r.choiceViews(*r.current))

	if err := r.sender.SendAnswer(r.current.ID, original); err != nil {
		// Gate stays closed: at-most-once wins over recoverability.
		log.Warn().Err(err).Str("question_id", r.current.ID).Msg("answer send failed")
	}
	return nil
}

func (r *Reconciler) showQuestion(q domain.Question) {
	same := r.current != nil && r.current.ID == q.ID
	r.current = &q
	r.gate = r.gate.OnQuestion(q.ID)
	r.order = EnsureOrder(r.rnd, q.ID, len(q.Choices), r.order)
	r.phase = domain.PhaseQuestion

	if !same {
		r.renderer.ShowResult("")
	}
	r.renderer.ShowPhase("Question")
	r.renderer.ShowQuestion(q, r.choiceViews(q))
	r.ticker.Start(q.EndsAt)
}

func (r *Reconciler) showReveal(rev domain.Reveal) {
	r.phase = domain.PhaseReveal
	r.current = &rev.Question

	// Reuse the rendered order when its length still matches; a join
	// mid-reveal has no order yet and falls back to ascending.
	order := r.order
	if len(order.Positions) != len(rev.Choices) {
		order = Order{QuestionID: rev.ID, Positions: ascending(len(rev.Choices))}
	}
	r.order = order

	if rev.CorrectIndex < 0 || rev.CorrectIndex >= len(rev.Choices) {
		log.Warn().
			Str("question_id", rev.ID).
			Int("correct_index", rev.CorrectIndex).
			Msg("reveal without a usable correct index")
	}

	views := make([]ChoiceView, 0, len(order.Positions))
	for _, original := range order.Positions {
		views = append(views, ChoiceView{
			Label:         rev.Choices[original],
			OriginalIndex: original,
			Disabled:      true,
			Revealed:      true,
			Correct:       original == rev.CorrectIndex,
		})
	}

	r.renderer.ShowPhase("Reveal")
	r.renderer.ShowReveal(rev, views)
	r.ticker.Stop()
}

func (r *Reconciler) enterWaiting() {
	r.phase = domain.PhaseWaiting
	r.current = nil
	r.renderer.ShowPhase("Waiting for next question...")
	r.renderer.ClearQuestion()
	r.ticker.Stop()
}

func (r *Reconciler) choiceViews(q domain.Question) []ChoiceView {
	disabled := !r.gate.CanAnswer(q.ID)
	views := make([]ChoiceView, 0, len(r.order.Positions))
	for _, original := range r.order.Positions {
		views = append(views, ChoiceView{
			Label:         q.Choices[original],
			OriginalIndex: original,
			Disabled:      disabled,
		})
	}
	return views
}
