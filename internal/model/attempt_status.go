package model

// AttemptStatus is the closed state machine for a quiz attempt.
// COMPLETED is terminal; a completed attempt is never mutated again.
type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

func (s AttemptStatus) IsValid() bool {
	return s == AttemptInProgress || s == AttemptCompleted
}
