package dto

import "time"

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ScoreDTO summarizes an attempt's running result.
type ScoreDTO struct {
	NumCorrect  int `json:"num_correct"`
	NumAnswered int `json:"num_answered"`
}

// StudentQuestionDTO is a question as shown to a student mid-attempt.
// It deliberately omits CorrectIndex.
type StudentQuestionDTO struct {
	ID         uint     `json:"id"`
	Prompt     string   `json:"prompt"`
	Choices    []string `json:"choices"`
	Difficulty string   `json:"difficulty"`
}

// AdminQuestionDTO is the full question view for instructors.
type AdminQuestionDTO struct {
	ID           uint      `json:"id"`
	ChapterID    uint      `json:"chapter_id"`
	Prompt       string    `json:"prompt"`
	Choices      []string  `json:"choices"`
	CorrectIndex int       `json:"correct_index"`
	Difficulty   string    `json:"difficulty"`
	IsActive     bool      `json:"is_active"`
	CreatedByID  *uint     `json:"created_by_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChapterDTO is the chapter view for both admin and student listings.
type ChapterDTO struct {
	ID         uint      `json:"id"`
	CourseID   uint      `json:"course_id"`
	Title      string    `json:"title"`
	OrderIndex *int      `json:"order_index,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuizDTO is the quiz view returned to students and admins.
type QuizDTO struct {
	ID              uint      `json:"id"`
	ChapterID       uint      `json:"chapter_id"`
	Title           string    `json:"title"`
	NumQuestions    int       `json:"num_questions"`
	AdaptiveEnabled bool      `json:"adaptive_enabled"`
	SelectionMode   string    `json:"selection_mode"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
}

// StartAttemptResponse is the result of starting an attempt. Question is
// nil when the chapter's bank was empty and the attempt completed
// immediately with a zero score.
type StartAttemptResponse struct {
	AttemptID         uint                `json:"attempt_id"`
	Status            string              `json:"status"`
	CurrentDifficulty string              `json:"current_difficulty"`
	Question          *StudentQuestionDTO `json:"question,omitempty"`
	Score             ScoreDTO            `json:"score"`
	StartedAt         time.Time           `json:"started_at"`
}

// SubmitAnswerResponse is the result of grading one answer. NextQuestion
// is nil when the attempt completed, whether by reaching the quiz's
// target count or by exhausting the bank.
type SubmitAnswerResponse struct {
	IsCorrect     bool                `json:"is_correct"`
	Completed     bool                `json:"completed"`
	AttemptStatus string              `json:"attempt_status"`
	Score         ScoreDTO            `json:"score"`
	NextQuestion  *StudentQuestionDTO `json:"next_question,omitempty"`
}

// CurrentQuestionResponse is the attempt's pending question, or a
// completion summary when the bank is exhausted.
type CurrentQuestionResponse struct {
	AttemptStatus string              `json:"attempt_status"`
	Question      *StudentQuestionDTO `json:"question,omitempty"`
	Score         *ScoreDTO           `json:"score,omitempty"`
}

// AttemptSummaryDTO is one row in a student's attempt history.
type AttemptSummaryDTO struct {
	ID                uint       `json:"id"`
	QuizID            uint       `json:"quiz_id"`
	Status            string     `json:"status"`
	CurrentDifficulty string     `json:"current_difficulty"`
	Score             ScoreDTO   `json:"score"`
	StartedAt         time.Time  `json:"started_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
}

// AttemptDetailDTO is the full attempt view including graded answers.
type AttemptDetailDTO struct {
	AttemptSummaryDTO
	CurrentQuestion *StudentQuestionDTO `json:"current_question,omitempty"`
	Answers         []AnswerDTO         `json:"answers"`
}

// AnswerDTO is one graded answer within an attempt detail.
type AnswerDTO struct {
	QuestionID    uint      `json:"question_id"`
	SelectedIndex *int      `json:"selected_index"`
	IsCorrect     bool      `json:"is_correct"`
	AnsweredAt    time.Time `json:"answered_at"`
}
