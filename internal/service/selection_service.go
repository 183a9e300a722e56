package service

import (
	"math/rand"

	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"gorm.io/gorm"
)

// NextDifficultyAfter maps the current difficulty and the correctness of
// the last answer to the next target difficulty.
//
// Rules:
//   - correct -> one step up   (EASY -> MEDIUM -> HARD), HARD stays HARD
//   - wrong   -> one step down (HARD -> MEDIUM -> EASY), EASY stays EASY
//
// An invalid current value is normalized to MEDIUM before the rule is
// applied, so the function is total.
func NextDifficultyAfter(current model.Difficulty, wasCorrect bool) model.Difficulty {
	idx := current.Index()
	if wasCorrect && idx < len(model.DifficultyOrder)-1 {
		return model.DifficultyOrder[idx+1]
	}
	if !wasCorrect && idx > 0 {
		return model.DifficultyOrder[idx-1]
	}
	return model.DifficultyOrder[idx]
}

// QuestionSelector picks the next unanswered active question for an
// attempt using the tiered fallback policy:
//
//  1. chapter questions at the attempt's target difficulty
//  2. the adjacent difficulties, one step down before one step up
//  3. anything active and unanswered left in the chapter
//  4. nothing -> nil, signalling the attempt should complete
//
// Ties within a tier break by uniform-random choice so question order is
// not predictable across attempts.
type QuestionSelector interface {
	WithTx(tx *gorm.DB) QuestionSelector
	SelectNextQuestion(attempt *model.QuizAttempt, answeredIDs []uint) (*model.Question, error)
}

type questionSelector struct {
	questionRepo repository.QuestionRepository
	intn         func(n int) int
}

func NewQuestionSelector(questionRepo repository.QuestionRepository) QuestionSelector {
	return &questionSelector{questionRepo: questionRepo, intn: rand.Intn}
}

// NewQuestionSelectorWithRand injects the tie-break source so tests can
// pin the draw.
func NewQuestionSelectorWithRand(questionRepo repository.QuestionRepository, intn func(n int) int) QuestionSelector {
	return &questionSelector{questionRepo: questionRepo, intn: intn}
}

func (s *questionSelector) WithTx(tx *gorm.DB) QuestionSelector {
	return &questionSelector{questionRepo: s.questionRepo.WithTx(tx), intn: s.intn}
}

func (s *questionSelector) SelectNextQuestion(attempt *model.QuizAttempt, answeredIDs []uint) (*model.Question, error) {
	if attempt == nil || attempt.Quiz.ID == 0 {
		return nil, nil
	}
	chapterID := attempt.Quiz.ChapterID

	target := attempt.CurrentDifficulty.OrNormalized()

	// tier 1: target difficulty
	question, err := s.pickAt(chapterID, &target, answeredIDs)
	if err != nil || question != nil {
		return question, err
	}

	// tier 2: adjacent difficulties, lower before upper
	idx := target.Index()
	var adjacents []model.Difficulty
	if idx-1 >= 0 {
		adjacents = append(adjacents, model.DifficultyOrder[idx-1])
	}
	if idx+1 < len(model.DifficultyOrder) {
		adjacents = append(adjacents, model.DifficultyOrder[idx+1])
	}
	for _, difficulty := range adjacents {
		question, err = s.pickAt(chapterID, &difficulty, answeredIDs)
		if err != nil || question != nil {
			return question, err
		}
	}

	// tier 3: any active unanswered question left in the chapter
	return s.pickAt(chapterID, nil, answeredIDs)
}

func (s *questionSelector) pickAt(chapterID uint, difficulty *model.Difficulty, answeredIDs []uint) (*model.Question, error) {
	candidates, err := s.questionRepo.FindActiveUnanswered(chapterID, difficulty, answeredIDs)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	picked := candidates[s.intn(len(candidates))]
	return &picked, nil
}
