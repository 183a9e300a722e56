package model

import "time"

// SelectionMode names the question-selection policy for a quiz.
// Only adaptive selection is implemented; the column exists so new
// modes can be added without a schema change.
type SelectionMode string

const SelectionAdaptive SelectionMode = "ADAPTIVE"

type Quiz struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	ChapterID uint    `json:"chapter_id" gorm:"not null;index"`
	Chapter   Chapter `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	Title     string  `json:"title" gorm:"not null"`
	// NumQuestions is the target question count per attempt; an attempt
	// completes early if the chapter's bank is exhausted first.
	NumQuestions    int           `json:"num_questions" gorm:"not null"`
	AdaptiveEnabled bool          `json:"adaptive_enabled" gorm:"not null"`
	SelectionMode   SelectionMode `json:"selection_mode" gorm:"type:varchar(12);not null;default:'ADAPTIVE'"`
	IsPublished     bool          `json:"is_published" gorm:"not null"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
