package repository

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository

	Create(answer *model.AttemptAnswer) error
	ExistsForAttemptAndQuestion(attemptID, questionID uint) (bool, error)
	// ListQuestionIDs returns the ids of every question already answered
	// in the attempt, feeding the selector's exclusion set.
	ListQuestionIDs(attemptID uint) ([]uint, error)
	FindAllByAttempt(attemptID uint) ([]model.AttemptAnswer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Create(answer *model.AttemptAnswer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) ExistsForAttemptAndQuestion(attemptID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.AttemptAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *answerRepository) ListQuestionIDs(attemptID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.AttemptAnswer{}).
		Where("attempt_id = ?", attemptID).
		Pluck("question_id", &ids).Error
	return ids, err
}

func (r *answerRepository) FindAllByAttempt(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.db.
		Where("attempt_id = ?", attemptID).
		Order("answered_at ASC").
		Find(&answers).Error
	return answers, err
}
