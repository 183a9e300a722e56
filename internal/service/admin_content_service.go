package service

import (
	"fmt"

	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AdminContentService covers instructor-side authoring: chapters,
// questions (with soft delete) and quizzes (with publication).
type AdminContentService interface {
	CreateChapter(req dto.CreateChapterRequest) (*dto.ChapterDTO, error)
	ListChapters(courseID uint) ([]dto.ChapterDTO, error)
	CreateQuestion(chapterID uint, req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error)
	ListQuestions(chapterID uint) ([]dto.AdminQuestionDTO, error)
	DeactivateQuestion(questionID uint) error
	CreateQuiz(chapterID uint, req dto.CreateQuizRequest) (*dto.QuizDTO, error)
	PublishQuiz(quizID uint, published bool) (*dto.QuizDTO, error)
}

type adminContentService struct {
	chapterRepo  repository.ChapterRepository
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
}

func NewAdminContentService(
	chapterRepo repository.ChapterRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
) AdminContentService {
	return &adminContentService{
		chapterRepo:  chapterRepo,
		questionRepo: questionRepo,
		quizRepo:     quizRepo,
	}
}

func (s *adminContentService) CreateChapter(req dto.CreateChapterRequest) (*dto.ChapterDTO, error) {
	chapter := model.Chapter{
		CourseID:   req.CourseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := s.chapterRepo.Create(&chapter); err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("CreateChapter: failed to create chapter")
		return nil, err
	}
	var resp dto.ChapterDTO
	copier.Copy(&resp, &chapter)
	return &resp, nil
}

func (s *adminContentService) ListChapters(courseID uint) ([]dto.ChapterDTO, error) {
	chapters, err := s.chapterRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.ChapterDTO, 0, len(chapters))
	for i := range chapters {
		var d dto.ChapterDTO
		copier.Copy(&d, &chapters[i])
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *adminContentService) CreateQuestion(chapterID uint, req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error) {
	if _, err := s.chapterRepo.FindByID(chapterID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	if len(req.Choices) != model.NumChoices {
		return nil, fmt.Errorf("%w: exactly %d choices required, got %d", ErrInvalidQuestion, model.NumChoices, len(req.Choices))
	}
	if req.CorrectIndex == nil || *req.CorrectIndex < 0 || *req.CorrectIndex >= model.NumChoices {
		return nil, fmt.Errorf("%w: correct_index must be between 0 and %d", ErrInvalidQuestion, model.NumChoices-1)
	}
	difficulty := model.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuestion, req.Difficulty)
	}

	question := model.Question{
		ChapterID:    chapterID,
		Prompt:       req.Prompt,
		Choices:      datatypes.NewJSONSlice(req.Choices),
		CorrectIndex: *req.CorrectIndex,
		Difficulty:   difficulty,
		IsActive:     true,
		CreatedByID:  req.CreatedByID,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("CreateQuestion: failed to create question")
		return nil, err
	}
	resp := adminQuestionDTO(&question)
	return &resp, nil
}

func (s *adminContentService) ListQuestions(chapterID uint) ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindByChapterID(chapterID)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		dtos = append(dtos, adminQuestionDTO(&questions[i]))
	}
	return dtos, nil
}

func (s *adminContentService) DeactivateQuestion(questionID uint) error {
	if err := s.questionRepo.Deactivate(questionID); err != nil {
		if repository.IsNotFound(err) {
			return ErrQuestionNotFound
		}
		return err
	}
	log.Info().Uint("questionID", questionID).Msg("DeactivateQuestion: question soft-deleted")
	return nil
}

func (s *adminContentService) CreateQuiz(chapterID uint, req dto.CreateQuizRequest) (*dto.QuizDTO, error) {
	if _, err := s.chapterRepo.FindByID(chapterID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	quiz := model.Quiz{
		ChapterID:       chapterID,
		Title:           req.Title,
		NumQuestions:    req.NumQuestions,
		AdaptiveEnabled: true,
		SelectionMode:   model.SelectionAdaptive,
		IsPublished:     false,
	}
	if req.AdaptiveEnabled != nil {
		quiz.AdaptiveEnabled = *req.AdaptiveEnabled
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("CreateQuiz: failed to create quiz")
		return nil, err
	}
	var resp dto.QuizDTO
	copier.Copy(&resp, &quiz)
	return &resp, nil
}

func (s *adminContentService) PublishQuiz(quizID uint, published bool) (*dto.QuizDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	quiz.IsPublished = published
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	log.Info().Uint("quizID", quizID).Bool("published", published).Msg("PublishQuiz: publication state changed")
	var resp dto.QuizDTO
	copier.Copy(&resp, quiz)
	return &resp, nil
}

func adminQuestionDTO(question *model.Question) dto.AdminQuestionDTO {
	return dto.AdminQuestionDTO{
		ID:           question.ID,
		ChapterID:    question.ChapterID,
		Prompt:       question.Prompt,
		Choices:      question.Choices,
		CorrectIndex: question.CorrectIndex,
		Difficulty:   string(question.Difficulty),
		IsActive:     question.IsActive,
		CreatedByID:  question.CreatedByID,
		CreatedAt:    question.CreatedAt,
	}
}
