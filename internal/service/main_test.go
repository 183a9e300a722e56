package service_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/adaptive-testers/aztec-assess/database"
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/adaptive-testers/aztec-assess/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database and runs the
// full migration, partial unique index included, so tests exercise the
// same constraints production relies on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedChapter(t *testing.T, db *gorm.DB) *model.Chapter {
	t.Helper()
	course := model.Course{Title: "Algorithms 101"}
	require.NoError(t, db.Create(&course).Error)
	chapter := model.Chapter{CourseID: course.ID, Title: "Sorting"}
	require.NoError(t, db.Create(&chapter).Error)
	return &chapter
}

// seedQuestion creates an active question whose correct choice is index 1.
func seedQuestion(t *testing.T, db *gorm.DB, chapterID uint, prompt string, difficulty model.Difficulty) *model.Question {
	t.Helper()
	question := model.Question{
		ChapterID:    chapterID,
		Prompt:       prompt,
		Choices:      datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
		CorrectIndex: 1,
		Difficulty:   difficulty,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

// seedBank creates n questions per difficulty level.
func seedBank(t *testing.T, db *gorm.DB, chapterID uint, n int) {
	t.Helper()
	for _, difficulty := range model.DifficultyOrder {
		for i := 0; i < n; i++ {
			seedQuestion(t, db, chapterID, fmt.Sprintf("%s-%d", difficulty, i), difficulty)
		}
	}
}

func seedQuiz(t *testing.T, db *gorm.DB, chapterID uint, numQuestions int, published bool) *model.Quiz {
	t.Helper()
	quiz := model.Quiz{
		ChapterID:       chapterID,
		Title:           "Quiz",
		NumQuestions:    numQuestions,
		AdaptiveEnabled: true,
		SelectionMode:   model.SelectionAdaptive,
		IsPublished:     published,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func newAttemptService(db *gorm.DB) service.AttemptService {
	questionRepo := repository.NewQuestionRepository(db)
	return service.NewAttemptService(
		repository.NewQuizRepository(db),
		questionRepo,
		repository.NewAttemptRepository(db),
		repository.NewAnswerRepository(db),
		service.NewQuestionSelector(questionRepo),
		db,
	)
}

func reloadAttempt(t *testing.T, db *gorm.DB, id uint) *model.QuizAttempt {
	t.Helper()
	var attempt model.QuizAttempt
	require.NoError(t, db.First(&attempt, id).Error)
	return &attempt
}
