package game

import "testing"

func TestGateAtMostOnce(t *testing.T) {
	gate := NewGate("")
	gate = gate.OnQuestion("q1")

	if !gate.CanAnswer("q1") {
		t.Fatalf("expected fresh round to accept an answer")
	}
	gate = gate.RecordAnswered()
	if gate.CanAnswer("q1") {
		t.Fatalf("expected gate closed after answering")
	}
	// Redelivery of the same question must not reopen the gate.
	gate = gate.OnQuestion("q1")
	if gate.CanAnswer("q1") {
		t.Fatalf("expected duplicate question to keep the gate closed")
	}
	// A different question reopens it.
	gate = gate.OnQuestion("q2")
	if !gate.CanAnswer("q2") {
		t.Fatalf("expected new question to reopen the gate")
	}
}

func TestGateInheritedLock(t *testing.T) {
	gate := NewGate("q1")
	gate = gate.OnQuestion("q1")

	if gate.CanAnswer("q1") {
		t.Fatalf("expected inherited lock to refuse q1")
	}
	if !gate.LockedFor("q1") {
		t.Fatalf("expected LockedFor(q1)")
	}

	// Any newer question clears the lock.
	gate = gate.OnQuestion("q2")
	if !gate.CanAnswer("q2") {
		t.Fatalf("expected q2 to be answerable after lock cleared")
	}
	if gate.LockedFor("q1") {
		t.Fatalf("expected lock cleared once a newer question arrived")
	}
}

func TestGateLockSurvivesDuplicateLockedQuestion(t *testing.T) {
	gate := NewGate("q1")
	gate = gate.OnQuestion("q1")
	gate = gate.OnQuestion("q1")

	if gate.CanAnswer("q1") {
		t.Fatalf("expected lock to survive redelivery of the locked question")
	}
}
