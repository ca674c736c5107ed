package domain

import "time"

// Phase is the server-declared stage of the current round.
type Phase string

const (
	PhaseUnjoined Phase = "unjoined"
	PhaseWaiting  Phase = "waiting"
	PhaseQuestion Phase = "question"
	PhaseReveal   Phase = "reveal"
)

// Question is the active prompt shown to participants.
type Question struct {
	ID       string
	Text     string
	Category string
	Choices  []string
	EndsAt   time.Time
}

// Reveal is a question with its correct choice disclosed.
// CorrectIndex is -1 when the server did not disclose one; in that case no
// choice is marked correct.
type Reveal struct {
	Question
	CorrectIndex int
}

// LeaderboardEntry is one scoreboard row. The server's delivery order is
// authoritative; clients never re-sort.
type LeaderboardEntry struct {
	UserID      string
	DisplayName string
	Score       int
}

// Self identifies the local participant within a joined session.
type Self struct {
	UserID      string
	DisplayName string
	// LockedUntilQuestionID names a question this client already answered
	// before a reconnect; answering it again is refused until a newer
	// question arrives.
	LockedUntilQuestionID string
}

// JoinSnapshot is the full session state delivered with a join acknowledgement.
type JoinSnapshot struct {
	Self        Self
	Phase       Phase
	Leaderboard []LeaderboardEntry
	Question    *Question
	Reveal      *Reveal
}

// AnswerOutcome reports the server's verdict on a submission. It never moves
// the client to another phase.
type AnswerOutcome struct {
	OK          bool
	Correct     bool
	Points      int
	Rank        int
	RankWord    string
	Humor       string
	Reason      string
	Leaderboard []LeaderboardEntry
}

// Profile is the locally persisted identity used for auto-join, the terminal
// analog of the cookie the browser client kept.
type Profile struct {
	UserID      string `yaml:"userId" json:"userId"`
	DisplayName string `yaml:"displayName" json:"displayName"`
}
