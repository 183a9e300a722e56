package repository

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository

	Create(attempt *model.QuizAttempt) error
	Update(attempt *model.QuizAttempt) error
	FindByID(id uint) (*model.QuizAttempt, error)
	// FindByIDWithQuiz eager-loads the quiz (selection needs its chapter
	// and num_questions) and the current question.
	FindByIDWithQuiz(id uint) (*model.QuizAttempt, error)
	// FindInProgress returns the student's IN_PROGRESS attempt for a
	// quiz, or gorm.ErrRecordNotFound when none exists.
	FindInProgress(studentID, quizID uint) (*model.QuizAttempt, error)
	FindAllByStudent(studentID uint, quizID *uint) ([]model.QuizAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.QuizAttempt) error {
	// Associations (Quiz, CurrentQuestion) are loaded for reads; only
	// the attempt row itself is written back.
	return r.db.Omit(clause.Associations).Save(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithQuiz(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Preload("CurrentQuestion").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindInProgress(studentID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Where("student_id = ? AND quiz_id = ? AND status = ?", studentID, quizID, model.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByStudent(studentID uint, quizID *uint) ([]model.QuizAttempt, error) {
	query := r.db.Where("student_id = ?", studentID)
	if quizID != nil {
		query = query.Where("quiz_id = ?", *quizID)
	}
	var attempts []model.QuizAttempt
	err := query.Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}
