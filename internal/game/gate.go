package game

// Gate enforces at-most-once answering per question, including the lock
// inherited from a session joined after a reconnect. Value semantics: every
// mutation returns the next state.
type Gate struct {
	questionID  string
	answered    bool
	lockedUntil string
}

// NewGate seeds a gate from the join snapshot's inherited lock.
func NewGate(lockedUntilQuestionID string) Gate {
	return Gate{lockedUntil: lockedUntilQuestionID}
}

// CanAnswer reports whether a submission for questionID is permitted.
func (g Gate) CanAnswer(questionID string) bool {
	return !g.answered && questionID != g.lockedUntil
}

// Answered reports whether the current round was already answered.
func (g Gate) Answered() bool {
	return g.answered
}

// LockedFor reports whether questionID is refused because of the inherited lock.
func (g Gate) LockedFor(questionID string) bool {
	return g.lockedUntil != "" && questionID == g.lockedUntil
}

// RecordAnswered closes the gate for the current round. It reopens only when
// a different question arrives.
func (g Gate) RecordAnswered() Gate {
	g.answered = true
	return g
}

// OnQuestion advances the gate for an arriving question. A new question id
// resets the answered flag; any question other than the locked one clears
// the inherited lock, since the lock applies only to the exact question
// answered before disconnecting.
func (g Gate) OnQuestion(questionID string) Gate {
	if questionID != g.questionID {
		g.answered = false
		g.questionID = questionID
	}
	if g.lockedUntil != "" && questionID != g.lockedUntil {
		g.lockedUntil = ""
	}
	return g
}
