package model

import (
	"time"

	"gorm.io/datatypes"
)

// NumChoices is the fixed choice count every question carries.
const NumChoices = 4

type Question struct {
	ID           uint                        `gorm:"primarykey" json:"id"`
	ChapterID    uint                        `json:"chapter_id" gorm:"not null;index:idx_questions_chapter_difficulty,priority:1"`
	Prompt       string                      `json:"prompt" gorm:"type:text;not null"`
	Choices      datatypes.JSONSlice[string] `json:"choices" gorm:"not null"`
	CorrectIndex int                         `json:"correct_index" gorm:"not null"` // 0..3
	Difficulty   Difficulty                  `json:"difficulty" gorm:"type:varchar(6);not null;default:'MEDIUM';index:idx_questions_chapter_difficulty,priority:2"`
	// IsActive is the soft-delete flag; inactive questions are invisible
	// to selection and to answer submission.
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedByID *uint     `json:"created_by_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
