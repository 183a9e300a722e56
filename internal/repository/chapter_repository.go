package repository

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(chapter *model.Chapter) error
	FindByID(id uint) (*model.Chapter, error)
	FindAllByCourse(courseID uint) ([]model.Chapter, error)
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *chapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindAllByCourse(courseID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.db.
		Where("course_id = ?", courseID).
		Order("order_index ASC, created_at ASC").
		Find(&chapters).Error
	return chapters, err
}
