package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	quizService    service.StudentQuizService
	attemptService service.AttemptService
}

func NewAttemptController(qs service.StudentQuizService, as service.AttemptService) *AttemptController {
	return &AttemptController{quizService: qs, attemptService: as}
}

// statusForError maps domain errors to transport status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAttemptOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAttemptAlreadyInProgress),
		errors.Is(err, service.ErrQuestionNotCurrent),
		errors.Is(err, service.ErrDuplicateAnswer):
		return http.StatusConflict
	case errors.Is(err, service.ErrAttemptCompleted),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrInvalidSelectedIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusForError(err)
	body := dto.ErrorResponse{Message: err.Error()}
	var conflict *service.AttemptConflictError
	if errors.As(err, &conflict) {
		body.Details = []string{"existing_attempt_id: " + strconv.FormatUint(uint64(conflict.AttemptID), 10)}
	}
	ctx.JSON(status, body)
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func parseStudentIDQuery(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("student_id"), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return 0, false
	}
	return uint(val), true
}

// ListQuizzes godoc
// @Summary (Student) List published quizzes in a chapter
// @Tags Student - Quizzes & Attempts
// @Produce json
// @Param chapter_id path int true "Chapter ID"
// @Success 200 {array} dto.QuizDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /chapters/{chapter_id}/quizzes [get]
func (c *AttemptController) ListQuizzes(ctx *gin.Context) {
	chapterID, ok := parseID(ctx, "chapter_id")
	if !ok {
		return
	}
	quizzes, err := c.quizService.ListPublishedQuizzes(chapterID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary (Student) Get a published quiz
// @Tags Student - Quizzes & Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [get]
func (c *AttemptController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parseID(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(quizID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// StartAttempt godoc
// @Summary (Student) Start a quiz attempt
// @Description Creates an IN_PROGRESS attempt and returns its first question. Responds 200 with an immediately COMPLETED attempt when the chapter has no active questions, 409 when an attempt is already in progress.
// @Tags Student - Quizzes & Attempts
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param body body dto.StartAttemptRequest true "Student starting the attempt"
// @Success 201 {object} dto.StartAttemptResponse "Attempt created with a question attached"
// @Success 200 {object} dto.StartAttemptResponse "Attempt created and completed immediately (empty bank)"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	quizID, ok := parseID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.StartAttempt(quizID, req.StudentID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	// 201 when a question is attached; 200 when the bank was empty and
	// the attempt completed on the spot.
	status := http.StatusCreated
	if resp.Question == nil {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}

// SubmitAnswer godoc
// @Summary (Student) Submit an answer for the attempt's current question
// @Tags Student - Quizzes & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.SubmitAnswerRequest true "Answer submission"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Completed attempt, unknown question or malformed input"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Stale question or duplicate answer"
// @Router /attempts/{attempt_id}/answers [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	attemptID, ok := parseID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if *req.SelectedIndex < 0 || *req.SelectedIndex > 3 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: service.ErrInvalidSelectedIndex.Error()})
		return
	}

	resp, err := c.attemptService.SubmitAnswer(attemptID, req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CurrentQuestion godoc
// @Summary (Student) Get the attempt's current question
// @Tags Student - Quizzes & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param student_id query int true "Student ID"
// @Success 200 {object} dto.CurrentQuestionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/current [get]
func (c *AttemptController) CurrentQuestion(ctx *gin.Context) {
	attemptID, ok := parseID(ctx, "attempt_id")
	if !ok {
		return
	}
	studentID, ok := parseStudentIDQuery(ctx)
	if !ok {
		return
	}
	resp, err := c.attemptService.CurrentQuestion(attemptID, studentID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary (Student) Get attempt details including graded answers
// @Tags Student - Quizzes & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param student_id query int true "Student ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := parseID(ctx, "attempt_id")
	if !ok {
		return
	}
	studentID, ok := parseStudentIDQuery(ctx)
	if !ok {
		return
	}
	detail, err := c.attemptService.GetAttempt(attemptID, studentID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListMyAttempts godoc
// @Summary (Student) List the caller's attempts
// @Tags Student - Quizzes & Attempts
// @Produce json
// @Param student_id query int true "Student ID"
// @Param quiz_id query int false "Filter by quiz"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /my-attempts [get]
func (c *AttemptController) ListMyAttempts(ctx *gin.Context) {
	studentID, ok := parseStudentIDQuery(ctx)
	if !ok {
		return
	}
	var quizID *uint
	if raw := ctx.Query("quiz_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz_id format"})
			return
		}
		id := uint(val)
		quizID = &id
	}

	attempts, err := c.attemptService.ListAttempts(studentID, quizID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("ListMyAttempts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
