package repository

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository

	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindPublishedByID(id uint) (*model.Quiz, error)
	FindPublishedByChapter(chapterID uint) ([]model.Quiz, error)
	Update(quiz *model.Quiz) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindPublishedByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Where("id = ? AND is_published = ?", id, true).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindPublishedByChapter(chapterID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("chapter_id = ? AND is_published = ?", chapterID, true).
		Order("created_at ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}
