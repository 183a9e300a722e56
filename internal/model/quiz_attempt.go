package model

import "time"

type QuizAttempt struct {
	ID        uint `gorm:"primarykey" json:"id"`
	StudentID uint `json:"student_id" gorm:"not null;index"`
	QuizID    uint `json:"quiz_id" gorm:"not null;index"`
	Quiz      Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`

	Status            AttemptStatus `json:"status" gorm:"type:varchar(12);not null;default:'IN_PROGRESS'"`
	CurrentDifficulty Difficulty    `json:"current_difficulty" gorm:"type:varchar(6);not null;default:'MEDIUM'"`

	// CurrentQuestionID addresses the question the student is expected to
	// answer next. Set exactly while the attempt is IN_PROGRESS and the
	// bank still has candidates; nil once COMPLETED.
	CurrentQuestionID *uint     `json:"current_question_id,omitempty"`
	CurrentQuestion   *Question `json:"current_question,omitempty" gorm:"foreignKey:CurrentQuestionID"`

	NumAnswered int `json:"num_answered" gorm:"not null;default:0"`
	NumCorrect  int `json:"num_correct" gorm:"not null;default:0"`

	StartedAt time.Time  `json:"started_at" gorm:"autoCreateTime"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Answers []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

func (a *QuizAttempt) IsFinished() bool {
	return a.Status == AttemptCompleted
}

// Score is the attempt's running result summary.
type Score struct {
	NumCorrect  int `json:"num_correct"`
	NumAnswered int `json:"num_answered"`
}

func (a *QuizAttempt) CalculateScore() Score {
	return Score{NumCorrect: a.NumCorrect, NumAnswered: a.NumAnswered}
}
