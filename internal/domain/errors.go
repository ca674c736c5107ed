package domain

import "errors"

var (
	// ErrNotJoined is returned when a user acts before the session is joined.
	ErrNotJoined = errors.New("not joined to a session")
	// ErrNoActiveQuestion is returned when an answer is attempted outside the question phase.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrAlreadyAnswered is returned when this round was already answered.
	ErrAlreadyAnswered = errors.New("already answered this question")
	// ErrAnswerLocked is returned when the question was answered before a reconnect.
	ErrAnswerLocked = errors.New("answer locked from previous session")
	// ErrChoiceOutOfRange is returned when a choice position does not exist.
	ErrChoiceOutOfRange = errors.New("choice out of range")
	// ErrProfileNotFound indicates no saved participant profile exists yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmptyName is returned when a join is attempted with a blank display name.
	ErrEmptyName = errors.New("display name must not be empty")
)
