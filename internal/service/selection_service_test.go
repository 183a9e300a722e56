package service_test

import (
	"testing"

	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/adaptive-testers/aztec-assess/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextDifficultyAfter(t *testing.T) {
	tests := []struct {
		name       string
		current    model.Difficulty
		wasCorrect bool
		want       model.Difficulty
	}{
		{"easy correct moves up", model.DifficultyEasy, true, model.DifficultyMedium},
		{"medium correct moves up", model.DifficultyMedium, true, model.DifficultyHard},
		{"hard correct stays at ceiling", model.DifficultyHard, true, model.DifficultyHard},
		{"hard wrong moves down", model.DifficultyHard, false, model.DifficultyMedium},
		{"medium wrong moves down", model.DifficultyMedium, false, model.DifficultyEasy},
		{"easy wrong stays at floor", model.DifficultyEasy, false, model.DifficultyEasy},
		{"invalid treated as medium, correct", model.Difficulty("BOGUS"), true, model.DifficultyHard},
		{"invalid treated as medium, wrong", model.Difficulty(""), false, model.DifficultyEasy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.NextDifficultyAfter(tt.current, tt.wasCorrect)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

// selectorFixture seeds a chapter with three questions per difficulty
// and returns an attempt targeting MEDIUM plus the selector under test.
func selectorFixture(t *testing.T) (*gorm.DB, *model.QuizAttempt, service.QuestionSelector) {
	db := newTestDB(t)
	chapter := seedChapter(t, db)
	seedBank(t, db, chapter.ID, 3)
	quiz := seedQuiz(t, db, chapter.ID, 3, true)

	attempt := &model.QuizAttempt{
		StudentID:         1,
		QuizID:            quiz.ID,
		Quiz:              *quiz,
		Status:            model.AttemptInProgress,
		CurrentDifficulty: model.DifficultyMedium,
	}
	selector := service.NewQuestionSelector(repository.NewQuestionRepository(db))
	return db, attempt, selector
}

func questionIDsByDifficulty(t *testing.T, db *gorm.DB, chapterID uint, difficulty model.Difficulty) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&model.Question{}).
		Where("chapter_id = ? AND difficulty = ?", chapterID, difficulty).
		Pluck("id", &ids).Error)
	return ids
}

func TestSelectNextQuestion_PicksTargetDifficulty(t *testing.T) {
	_, attempt, selector := selectorFixture(t)

	// Random tie-break, so assert tier membership over repeated draws
	// rather than an exact question.
	for i := 0; i < 20; i++ {
		question, err := selector.SelectNextQuestion(attempt, nil)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.Equal(t, model.DifficultyMedium, question.Difficulty)
		assert.True(t, question.IsActive)
	}
}

func TestSelectNextQuestion_NeverReturnsAnswered(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	mediumIDs := questionIDsByDifficulty(t, db, attempt.Quiz.ChapterID, model.DifficultyMedium)
	answered := mediumIDs[:2]

	for i := 0; i < 20; i++ {
		question, err := selector.SelectNextQuestion(attempt, answered)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.NotContains(t, answered, question.ID)
	}
}

func TestSelectNextQuestion_FallsBackToLowerAdjacentFirst(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	answered := questionIDsByDifficulty(t, db, attempt.Quiz.ChapterID, model.DifficultyMedium)

	// Target MEDIUM exhausted; both EASY and HARD have candidates.
	// The one-step-down tier wins.
	for i := 0; i < 20; i++ {
		question, err := selector.SelectNextQuestion(attempt, answered)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.Equal(t, model.DifficultyEasy, question.Difficulty)
	}
}

func TestSelectNextQuestion_FallsBackToUpperAdjacent(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	chapterID := attempt.Quiz.ChapterID
	answered := append(
		questionIDsByDifficulty(t, db, chapterID, model.DifficultyMedium),
		questionIDsByDifficulty(t, db, chapterID, model.DifficultyEasy)...,
	)

	question, err := selector.SelectNextQuestion(attempt, answered)
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, model.DifficultyHard, question.Difficulty)
}

func TestSelectNextQuestion_AnyRemainingTier(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	chapterID := attempt.Quiz.ChapterID

	// Target EASY with EASY and MEDIUM gone: tier 2 (MEDIUM) is empty
	// too, so the final any-difficulty tier returns HARD.
	attempt.CurrentDifficulty = model.DifficultyEasy
	answered := append(
		questionIDsByDifficulty(t, db, chapterID, model.DifficultyEasy),
		questionIDsByDifficulty(t, db, chapterID, model.DifficultyMedium)...,
	)

	question, err := selector.SelectNextQuestion(attempt, answered)
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, model.DifficultyHard, question.Difficulty)
}

func TestSelectNextQuestion_ReturnsNilWhenExhausted(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	var all []uint
	require.NoError(t, db.Model(&model.Question{}).Pluck("id", &all).Error)

	question, err := selector.SelectNextQuestion(attempt, all)
	require.NoError(t, err)
	assert.Nil(t, question)
}

func TestSelectNextQuestion_SkipsInactive(t *testing.T) {
	db, attempt, selector := selectorFixture(t)
	require.NoError(t, db.Model(&model.Question{}).
		Where("chapter_id = ? AND difficulty = ?", attempt.Quiz.ChapterID, model.DifficultyMedium).
		Update("is_active", false).Error)

	for i := 0; i < 20; i++ {
		question, err := selector.SelectNextQuestion(attempt, nil)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.NotEqual(t, model.DifficultyMedium, question.Difficulty)
		assert.True(t, question.IsActive)
	}
}

func TestSelectNextQuestion_NilQuizReturnsNil(t *testing.T) {
	db := newTestDB(t)
	selector := service.NewQuestionSelector(repository.NewQuestionRepository(db))

	question, err := selector.SelectNextQuestion(&model.QuizAttempt{}, nil)
	require.NoError(t, err)
	assert.Nil(t, question)

	question, err = selector.SelectNextQuestion(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, question)
}

func TestSelectNextQuestion_InvalidDifficultyTargetsMedium(t *testing.T) {
	_, attempt, selector := selectorFixture(t)
	attempt.CurrentDifficulty = model.Difficulty("LEGENDARY")

	question, err := selector.SelectNextQuestion(attempt, nil)
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, model.DifficultyMedium, question.Difficulty)
}

func TestSelectNextQuestion_PinnedRandSource(t *testing.T) {
	db, attempt, _ := selectorFixture(t)
	selector := service.NewQuestionSelectorWithRand(
		repository.NewQuestionRepository(db),
		func(n int) int { return 0 },
	)

	first, err := selector.SelectNextQuestion(attempt, nil)
	require.NoError(t, err)
	second, err := selector.SelectNextQuestion(attempt, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
