package service

import (
	"errors"
	"fmt"
)

// Domain errors. All are per-request and recoverable; the caller can
// re-query current state and decide whether to retry.
var (
	ErrQuizNotFound             = errors.New("quiz not found")
	ErrChapterNotFound          = errors.New("chapter not found")
	ErrAttemptNotFound          = errors.New("attempt not found")
	ErrNotAttemptOwner          = errors.New("attempt belongs to another student")
	ErrAttemptAlreadyInProgress = errors.New("attempt already in progress for this quiz")
	ErrAttemptCompleted         = errors.New("attempt already completed")
	ErrQuestionNotFound         = errors.New("question not found")
	ErrQuestionNotCurrent       = errors.New("question is not the attempt's current question")
	ErrDuplicateAnswer          = errors.New("question already answered in this attempt")
	ErrInvalidQuestion          = errors.New("invalid question payload")
	ErrInvalidSelectedIndex     = errors.New("selected_index must be between 0 and 3")
)

// AttemptConflictError carries the id of the existing IN_PROGRESS
// attempt so the conflict response can point the caller at it.
type AttemptConflictError struct {
	AttemptID uint
}

func (e *AttemptConflictError) Error() string {
	return fmt.Sprintf("attempt %d already in progress for this quiz", e.AttemptID)
}

func (e *AttemptConflictError) Is(target error) bool {
	return target == ErrAttemptAlreadyInProgress
}
