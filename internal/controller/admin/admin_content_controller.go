package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminContentController struct {
	contentService service.AdminContentService
}

func NewAdminContentController(cs service.AdminContentService) *AdminContentController {
	return &AdminContentController{contentService: cs}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// CreateChapter godoc
// @Summary (Admin) Create a chapter
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param body body dto.CreateChapterRequest true "Chapter payload"
// @Success 201 {object} dto.ChapterDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/chapters [post]
func (c *AdminContentController) CreateChapter(ctx *gin.Context) {
	var req dto.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	chapter, err := c.contentService.CreateChapter(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateChapter: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create chapter", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, chapter)
}

// ListChapters godoc
// @Summary (Admin) List chapters of a course
// @Tags Admin - Content
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.ChapterDTO
// @Router /admin/courses/{course_id}/chapters [get]
func (c *AdminContentController) ListChapters(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "course_id")
	if !ok {
		return
	}
	chapters, err := c.contentService.ListChapters(courseID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list chapters", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, chapters)
}

// CreateQuestion godoc
// @Summary (Admin) Create a question in a chapter
// @Description Questions carry exactly 4 choices and a correct_index in [0,3].
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param chapter_id path int true "Chapter ID"
// @Param body body dto.CreateQuestionRequest true "Question payload"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/chapters/{chapter_id}/questions [post]
func (c *AdminContentController) CreateQuestion(ctx *gin.Context) {
	chapterID, ok := parseID(ctx, "chapter_id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.contentService.CreateQuestion(chapterID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChapterNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrInvalidQuestion):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("chapterID", chapterID).Msg("CreateQuestion: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary (Admin) List all questions in a chapter, active or not
// @Tags Admin - Content
// @Produce json
// @Param chapter_id path int true "Chapter ID"
// @Success 200 {array} dto.AdminQuestionDTO
// @Router /admin/chapters/{chapter_id}/questions [get]
func (c *AdminContentController) ListQuestions(ctx *gin.Context) {
	chapterID, ok := parseID(ctx, "chapter_id")
	if !ok {
		return
	}
	questions, err := c.contentService.ListQuestions(chapterID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// DeactivateQuestion godoc
// @Summary (Admin) Soft-delete a question
// @Description Deactivated questions stop appearing in selection but stay referenced by past answers.
// @Tags Admin - Content
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *AdminContentController) DeactivateQuestion(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.contentService.DeactivateQuestion(questionID); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to deactivate question", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz in a chapter
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param chapter_id path int true "Chapter ID"
// @Param body body dto.CreateQuizRequest true "Quiz payload"
// @Success 201 {object} dto.QuizDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/chapters/{chapter_id}/quizzes [post]
func (c *AdminContentController) CreateQuiz(ctx *gin.Context) {
	chapterID, ok := parseID(ctx, "chapter_id")
	if !ok {
		return
	}
	var req dto.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	quiz, err := c.contentService.CreateQuiz(chapterID, req)
	if err != nil {
		if errors.Is(err, service.ErrChapterNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("CreateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// PublishQuiz godoc
// @Summary (Admin) Publish or unpublish a quiz
// @Tags Admin - Content
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param published query bool false "Publication state (default true)"
// @Success 200 {object} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id}/publish [post]
func (c *AdminContentController) PublishQuiz(ctx *gin.Context) {
	quizID, ok := parseID(ctx, "quiz_id")
	if !ok {
		return
	}
	published := true
	if raw := ctx.Query("published"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid published flag"})
			return
		}
		published = val
	}
	quiz, err := c.contentService.PublishQuiz(quizID, published)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}
