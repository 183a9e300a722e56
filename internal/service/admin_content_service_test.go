package service_test

import (
	"testing"

	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/adaptive-testers/aztec-assess/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) service.AdminContentService {
	return service.NewAdminContentService(
		repository.NewChapterRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewQuizRepository(db),
	)
}

func questionReq(prompt string, correct int, difficulty string) dto.CreateQuestionRequest {
	return dto.CreateQuestionRequest{
		Prompt:       prompt,
		Choices:      []string{"a", "b", "c", "d"},
		CorrectIndex: intPtr(correct),
		Difficulty:   difficulty,
	}
}

func TestCreateQuestion_Valid(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	svc := newAdminService(db)

	created, err := svc.CreateQuestion(chapter.ID, questionReq("What is 2+2?", 1, "HARD"))
	require.NoError(t, err)

	assert.Equal(t, chapter.ID, created.ChapterID)
	assert.Equal(t, "HARD", created.Difficulty)
	assert.Equal(t, 1, created.CorrectIndex)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"a", "b", "c", "d"}, created.Choices)
}

func TestCreateQuestion_DifficultyDefaultsToMedium(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	svc := newAdminService(db)

	created, err := svc.CreateQuestion(chapter.ID, questionReq("Q", 0, ""))
	require.NoError(t, err)
	assert.Equal(t, string(model.DifficultyMedium), created.Difficulty)
}

func TestCreateQuestion_Invalid(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	svc := newAdminService(db)

	badChoices := questionReq("Q", 1, "")
	badChoices.Choices = []string{"a", "b"}
	_, err := svc.CreateQuestion(chapter.ID, badChoices)
	assert.ErrorIs(t, err, service.ErrInvalidQuestion)

	_, err = svc.CreateQuestion(chapter.ID, questionReq("Q", 4, ""))
	assert.ErrorIs(t, err, service.ErrInvalidQuestion)

	_, err = svc.CreateQuestion(chapter.ID, questionReq("Q", 1, "BRUTAL"))
	assert.ErrorIs(t, err, service.ErrInvalidQuestion)

	_, err = svc.CreateQuestion(99999, questionReq("Q", 1, ""))
	assert.ErrorIs(t, err, service.ErrChapterNotFound)
}

func TestDeactivateQuestion(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	question := seedQuestion(t, db, chapter.ID, "Q1", model.DifficultyEasy)
	svc := newAdminService(db)

	require.NoError(t, svc.DeactivateQuestion(question.ID))

	var stored model.Question
	require.NoError(t, db.First(&stored, question.ID).Error)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, svc.DeactivateQuestion(99999), service.ErrQuestionNotFound)
}

func TestCreateChapterAndList(t *testing.T) {
	db := newTestDB(t)
	course := model.Course{Title: "Systems"}
	require.NoError(t, db.Create(&course).Error)
	svc := newAdminService(db)

	created, err := svc.CreateChapter(dto.CreateChapterRequest{
		CourseID:   course.ID,
		Title:      "Concurrency",
		OrderIndex: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, course.ID, created.CourseID)

	chapters, err := svc.ListChapters(course.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Concurrency", chapters[0].Title)
}

func TestCreateQuizAndPublish(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	svc := newAdminService(db)

	created, err := svc.CreateQuiz(chapter.ID, dto.CreateQuizRequest{
		Title:        "Midterm practice",
		NumQuestions: 5,
	})
	require.NoError(t, err)
	assert.False(t, created.IsPublished)
	assert.True(t, created.AdaptiveEnabled)
	assert.Equal(t, string(model.SelectionAdaptive), created.SelectionMode)

	published, err := svc.PublishQuiz(created.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	unpublished, err := svc.PublishQuiz(created.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)

	_, err = svc.PublishQuiz(99999, true)
	assert.ErrorIs(t, err, service.ErrQuizNotFound)

	_, err = svc.CreateQuiz(99999, dto.CreateQuizRequest{Title: "x", NumQuestions: 1})
	assert.ErrorIs(t, err, service.ErrChapterNotFound)
}

func TestStudentQuizVisibility(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	published := seedQuiz(t, db, chapter.ID, 3, true)
	draft := seedQuiz(t, db, chapter.ID, 3, false)
	svc := service.NewStudentQuizService(repository.NewQuizRepository(db))

	quizzes, err := svc.ListPublishedQuizzes(chapter.ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, published.ID, quizzes[0].ID)

	got, err := svc.GetQuiz(published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	_, err = svc.GetQuiz(draft.ID)
	assert.ErrorIs(t, err, service.ErrQuizNotFound)
}
