package dto

// CreateChapterRequest is the admin payload for adding a chapter to a course.
type CreateChapterRequest struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	OrderIndex *int   `json:"order_index"`
}

// CreateQuestionRequest is the admin payload for authoring a question.
// Choice count and correct-index range are validated in the service so
// the error message can be precise.
type CreateQuestionRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Choices      []string `json:"choices" binding:"required"`
	CorrectIndex *int     `json:"correct_index" binding:"required"`
	Difficulty   string   `json:"difficulty"`
	CreatedByID  *uint    `json:"created_by_id"`
}

// CreateQuizRequest is the admin payload for creating a quiz in a chapter.
type CreateQuizRequest struct {
	Title           string `json:"title" binding:"required"`
	NumQuestions    int    `json:"num_questions" binding:"required,gt=0"`
	AdaptiveEnabled *bool  `json:"adaptive_enabled"`
}

// StartAttemptRequest starts a quiz attempt for a student.
// StudentID is carried explicitly until real auth lands; the gateway in
// front of this API is responsible for vouching for it.
type StartAttemptRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// SubmitAnswerRequest submits one answer for the attempt's current question.
// SelectedIndex is a pointer so index 0 survives required-field binding.
type SubmitAnswerRequest struct {
	StudentID     uint `json:"student_id" binding:"required"`
	QuestionID    uint `json:"question_id" binding:"required"`
	SelectedIndex *int `json:"selected_index" binding:"required"`
}
