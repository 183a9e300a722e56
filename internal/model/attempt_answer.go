package model

import "time"

// AttemptAnswer records one graded submission. Rows are created once per
// (attempt, question) and never mutated or deleted; the unique index is
// the storage-level backstop against double-crediting a question.
type AttemptAnswer struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	AttemptID  uint     `json:"attempt_id" gorm:"not null;uniqueIndex:uq_attempt_answers_attempt_question,priority:1"`
	QuestionID uint     `json:"question_id" gorm:"not null;uniqueIndex:uq_attempt_answers_attempt_question,priority:2"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`

	SelectedIndex *int      `json:"selected_index"`
	IsCorrect     bool      `json:"is_correct" gorm:"not null"`
	AnsweredAt    time.Time `json:"answered_at" gorm:"autoCreateTime"`
}
