package repository

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	// WithTx returns a copy of the repository bound to tx so calls made
	// inside a transaction see and produce uncommitted state.
	WithTx(tx *gorm.DB) QuestionRepository

	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	// FindActiveByIDInChapter resolves a question id against a chapter,
	// requiring it to be active. Used when grading a submission.
	FindActiveByIDInChapter(id, chapterID uint) (*model.Question, error)
	FindByChapterID(chapterID uint) ([]model.Question, error)
	// FindActiveUnanswered returns the active questions in a chapter not
	// yet answered in the current attempt. A nil difficulty means any
	// difficulty.
	FindActiveUnanswered(chapterID uint, difficulty *model.Difficulty, excludedIDs []uint) ([]model.Question, error)
	Update(question *model.Question) error
	Deactivate(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindActiveByIDInChapter(id, chapterID uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Where("id = ? AND chapter_id = ? AND is_active = ?", id, chapterID, true).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByChapterID(chapterID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("chapter_id = ?", chapterID).
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindActiveUnanswered(chapterID uint, difficulty *model.Difficulty, excludedIDs []uint) ([]model.Question, error) {
	query := r.db.Where("chapter_id = ? AND is_active = ?", chapterID, true)
	if difficulty != nil {
		query = query.Where("difficulty = ?", *difficulty)
	}
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	var questions []model.Question
	err := query.Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Deactivate(id uint) error {
	result := r.db.Model(&model.Question{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
