package service

import (
	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// StudentQuizService is the read side students see: published quizzes
// only, never a correct answer.
type StudentQuizService interface {
	ListPublishedQuizzes(chapterID uint) ([]dto.QuizDTO, error)
	GetQuiz(quizID uint) (*dto.QuizDTO, error)
}

type studentQuizService struct {
	quizRepo repository.QuizRepository
}

func NewStudentQuizService(quizRepo repository.QuizRepository) StudentQuizService {
	return &studentQuizService{quizRepo: quizRepo}
}

func (s *studentQuizService) ListPublishedQuizzes(chapterID uint) ([]dto.QuizDTO, error) {
	quizzes, err := s.quizRepo.FindPublishedByChapter(chapterID)
	if err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("ListPublishedQuizzes: repository error")
		return nil, err
	}
	dtos := make([]dto.QuizDTO, 0, len(quizzes))
	for i := range quizzes {
		var d dto.QuizDTO
		copier.Copy(&d, &quizzes[i])
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *studentQuizService) GetQuiz(quizID uint) (*dto.QuizDTO, error) {
	quiz, err := s.quizRepo.FindPublishedByID(quizID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	var resp dto.QuizDTO
	copier.Copy(&resp, quiz)
	return &resp, nil
}
