package game

import "math/rand"

// Order is the per-client presentation permutation for a single question.
// Positions maps display position to original choice index; scoring always
// uses original indices.
type Order struct {
	QuestionID string
	Positions  []int
}

// EnsureOrder returns the presentation order to use for questionID.
//
// A question seen for the first time gets a fresh Fisher-Yates shuffle of
// [0, choiceCount). Redelivery of the same question returns prev unchanged,
// so the layout never flickers. If prev belongs to the same question but its
// length disagrees with choiceCount, the order is rebuilt ascending without
// reshuffling, so an already-answered round keeps a stable layout.
func EnsureOrder(rnd *rand.Rand, questionID string, choiceCount int, prev Order) Order {
	if prev.QuestionID != questionID {
		positions := ascending(choiceCount)
		for i := choiceCount - 1; i > 0; i-- {
			j := rnd.Intn(i + 1)
			positions[i], positions[j] = positions[j], positions[i]
		}
		return Order{QuestionID: questionID, Positions: positions}
	}
	if len(prev.Positions) != choiceCount {
		return Order{QuestionID: questionID, Positions: ascending(choiceCount)}
	}
	return prev
}

func ascending(n int) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	return positions
}
