package ws

import (
	"encoding/json"
	"time"

	"trivia-client/internal/domain"
)

// Wire shape: every message is a {type, payload} JSON envelope. Deadlines
// travel as epoch milliseconds on the server clock.

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type joinPayload struct {
	Name string `json:"name"`
}

type answerPayload struct {
	QuestionID  string `json:"questionId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

type selfPayload struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	LockedUntilQuestionID string `json:"lockedUntilQuestionId,omitempty"`
}

type entryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type questionPayload struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category,omitempty"`
	Choices  []string `json:"choices"`
	EndsAt   int64    `json:"endsAt,omitempty"`
}

type revealPayload struct {
	questionPayload
	CorrectIndex *int `json:"correctIndex,omitempty"`
}

type joinedPayload struct {
	Self        selfPayload      `json:"self"`
	Phase       string           `json:"phase"`
	Leaderboard []entryPayload   `json:"leaderboard"`
	Question    *questionPayload `json:"question,omitempty"`
	Reveal      *revealPayload   `json:"reveal,omitempty"`
}

type joinErrorPayload struct {
	Reason string `json:"reason"`
}

type leaderboardPayload struct {
	Leaderboard []entryPayload `json:"leaderboard"`
}

type answerResultPayload struct {
	OK          bool           `json:"ok"`
	Correct     bool           `json:"correct"`
	Points      int            `json:"points"`
	Rank        int            `json:"rank,omitempty"`
	RankWord    string         `json:"rankWord,omitempty"`
	Humor       string         `json:"humor,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Leaderboard []entryPayload `json:"leaderboard,omitempty"`
}

// Event is a decoded inbound server message: one of JoinedEvent,
// JoinRejectedEvent, QuestionEvent, RevealEvent, LeaderboardEvent,
// AnswerOutcomeEvent.
type Event any

type JoinedEvent struct{ Snapshot domain.JoinSnapshot }

type JoinRejectedEvent struct{ Reason string }

type QuestionEvent struct{ Question domain.Question }

type RevealEvent struct{ Reveal domain.Reveal }

type LeaderboardEvent struct{ Entries []domain.LeaderboardEntry }

type AnswerOutcomeEvent struct{ Outcome domain.AnswerOutcome }

func (p questionPayload) toDomain() domain.Question {
	q := domain.Question{
		ID:       p.ID,
		Text:     p.Text,
		Category: p.Category,
		Choices:  p.Choices,
	}
	if p.EndsAt > 0 {
		q.EndsAt = time.UnixMilli(p.EndsAt)
	}
	return q
}

func (p revealPayload) toDomain() domain.Reveal {
	correct := -1
	if p.CorrectIndex != nil {
		correct = *p.CorrectIndex
	}
	return domain.Reveal{Question: p.questionPayload.toDomain(), CorrectIndex: correct}
}

func entriesToDomain(entries []entryPayload) []domain.LeaderboardEntry {
	if entries == nil {
		return nil
	}
	out := make([]domain.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.LeaderboardEntry{UserID: e.ID, DisplayName: e.Name, Score: e.Score})
	}
	return out
}

func (p joinedPayload) toDomain() domain.JoinSnapshot {
	snap := domain.JoinSnapshot{
		Self: domain.Self{
			UserID:                p.Self.ID,
			DisplayName:           p.Self.Name,
			LockedUntilQuestionID: p.Self.LockedUntilQuestionID,
		},
		Phase:       domain.Phase(p.Phase),
		Leaderboard: entriesToDomain(p.Leaderboard),
	}
	if p.Question != nil {
		q := p.Question.toDomain()
		snap.Question = &q
	}
	if p.Reveal != nil {
		r := p.Reveal.toDomain()
		snap.Reveal = &r
	}
	return snap
}

func (p answerResultPayload) toDomain() domain.AnswerOutcome {
	return domain.AnswerOutcome{
		OK:          p.OK,
		Correct:     p.Correct,
		Points:      p.Points,
		Rank:        p.Rank,
		RankWord:    p.RankWord,
		Humor:       p.Humor,
		Reason:      p.Reason,
		Leaderboard: entriesToDomain(p.Leaderboard),
	}
}
