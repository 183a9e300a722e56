package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/adaptive-testers/aztec-assess/internal/dto"
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService is the attempt lifecycle manager. StartAttempt and
// SubmitAnswer each run as a single transaction: either every read and
// write in the sequence commits, or none of it is visible.
type AttemptService interface {
	StartAttempt(quizID, studentID uint) (*dto.StartAttemptResponse, error)
	SubmitAnswer(attemptID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	CurrentQuestion(attemptID, studentID uint) (*dto.CurrentQuestionResponse, error)
	GetAttempt(attemptID, studentID uint) (*dto.AttemptDetailDTO, error)
	ListAttempts(studentID uint, quizID *uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	selector     QuestionSelector
	db           *gorm.DB
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	selector QuestionSelector,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		selector:     selector,
		db:           db,
	}
}

// StartAttempt creates an IN_PROGRESS attempt at MEDIUM difficulty and
// assigns its first question. When the chapter has no active questions
// the attempt completes immediately with a zero score. The one
// IN_PROGRESS attempt per (student, quiz) rule is checked in the
// transaction and enforced again by the partial unique index, so two
// racing starts cannot both commit.
func (s *attemptService) StartAttempt(quizID, studentID uint) (*dto.StartAttemptResponse, error) {
	quiz, err := s.quizRepo.FindPublishedByID(quizID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}

	var resp *dto.StartAttemptResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)

		existing, findErr := attemptRepo.FindInProgress(studentID, quiz.ID)
		if findErr == nil {
			return &AttemptConflictError{AttemptID: existing.ID}
		}
		if !repository.IsNotFound(findErr) {
			return findErr
		}

		attempt := &model.QuizAttempt{
			StudentID:         studentID,
			QuizID:            quiz.ID,
			Status:            model.AttemptInProgress,
			CurrentDifficulty: model.DifficultyMedium,
		}
		if createErr := attemptRepo.Create(attempt); createErr != nil {
			if repository.IsUniqueViolation(createErr) {
				return ErrAttemptAlreadyInProgress
			}
			return createErr
		}

		attempt.Quiz = *quiz
		question, selErr := s.selector.WithTx(tx).SelectNextQuestion(attempt, nil)
		if selErr != nil {
			return selErr
		}
		if question == nil {
			completeAttempt(attempt)
		} else {
			attempt.CurrentQuestionID = &question.ID
		}
		if updateErr := attemptRepo.Update(attempt); updateErr != nil {
			return updateErr
		}

		resp = &dto.StartAttemptResponse{
			AttemptID:         attempt.ID,
			Status:            string(attempt.Status),
			CurrentDifficulty: string(attempt.CurrentDifficulty),
			Question:          studentQuestionDTO(question),
			Score:             scoreDTO(attempt),
			StartedAt:         attempt.StartedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAttemptAlreadyInProgress) {
			var conflict *AttemptConflictError
			if !errors.As(err, &conflict) {
				// Lost the race to the partial unique index; report the
				// attempt that won.
				if existing, findErr := s.attemptRepo.FindInProgress(studentID, quiz.ID); findErr == nil {
					err = &AttemptConflictError{AttemptID: existing.ID}
				}
			}
			log.Warn().Uint("quizID", quizID).Uint("studentID", studentID).Msg("StartAttempt: attempt already in progress")
			return nil, err
		}
		log.Error().Err(err).Uint("quizID", quizID).Uint("studentID", studentID).Msg("StartAttempt: transaction failed")
		return nil, err
	}

	log.Info().Uint("attemptID", resp.AttemptID).Uint("quizID", quizID).Uint("studentID", studentID).Str("status", resp.Status).Msg("StartAttempt: attempt created")
	return resp, nil
}

// SubmitAnswer grades the attempt's current question and advances the
// attempt: counters, adaptive difficulty, then either the next selected
// question or the COMPLETED terminal state. The whole sequence runs in
// one transaction; no partial update is ever visible.
func (s *attemptService) SubmitAnswer(attemptID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if req.SelectedIndex == nil || *req.SelectedIndex < 0 || *req.SelectedIndex >= model.NumChoices {
		return nil, ErrInvalidSelectedIndex
	}

	var resp *dto.SubmitAnswerResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)
		answerRepo := s.answerRepo.WithTx(tx)
		questionRepo := s.questionRepo.WithTx(tx)

		attempt, err := attemptRepo.FindByIDWithQuiz(attemptID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrAttemptNotFound
			}
			return err
		}
		if attempt.StudentID != req.StudentID {
			return ErrNotAttemptOwner
		}
		if attempt.Status != model.AttemptInProgress {
			return ErrAttemptCompleted
		}

		question, err := questionRepo.FindActiveByIDInChapter(req.QuestionID, attempt.Quiz.ChapterID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrQuestionNotFound
			}
			return err
		}

		// Reject stale or replayed submissions for a question the
		// attempt has moved past.
		if attempt.CurrentQuestionID != nil && *attempt.CurrentQuestionID != question.ID {
			return ErrQuestionNotCurrent
		}

		answered, err := answerRepo.ExistsForAttemptAndQuestion(attempt.ID, question.ID)
		if err != nil {
			return err
		}
		if answered {
			return ErrDuplicateAnswer
		}

		isCorrect := *req.SelectedIndex == question.CorrectIndex
		answer := &model.AttemptAnswer{
			AttemptID:     attempt.ID,
			QuestionID:    question.ID,
			SelectedIndex: req.SelectedIndex,
			IsCorrect:     isCorrect,
		}
		if err := answerRepo.Create(answer); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateAnswer
			}
			return err
		}

		attempt.NumAnswered++
		if isCorrect {
			attempt.NumCorrect++
		}
		attempt.CurrentDifficulty = NextDifficultyAfter(attempt.CurrentDifficulty, isCorrect)

		if attempt.NumAnswered >= attempt.Quiz.NumQuestions {
			completeAttempt(attempt)
			if err := attemptRepo.Update(attempt); err != nil {
				return err
			}
			resp = submitResponse(attempt, isCorrect, nil)
			return nil
		}

		answeredIDs, err := answerRepo.ListQuestionIDs(attempt.ID)
		if err != nil {
			return err
		}
		next, err := s.selector.WithTx(tx).SelectNextQuestion(attempt, answeredIDs)
		if err != nil {
			return err
		}
		if next == nil {
			// Bank exhausted before the target count was reached.
			completeAttempt(attempt)
		} else {
			attempt.CurrentQuestionID = &next.ID
			attempt.CurrentQuestion = next
		}
		if err := attemptRepo.Update(attempt); err != nil {
			return err
		}
		resp = submitResponse(attempt, isCorrect, next)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Uint("questionID", req.QuestionID).Msg("SubmitAnswer: rejected")
		return nil, err
	}
	return resp, nil
}

// CurrentQuestion returns the attempt's pending question. If the attempt
// is IN_PROGRESS with no current question assigned, selection is re-run
// and the attempt completes when the bank is exhausted.
func (s *attemptService) CurrentQuestion(attemptID, studentID uint) (*dto.CurrentQuestionResponse, error) {
	var resp *dto.CurrentQuestionResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)

		attempt, err := attemptRepo.FindByIDWithQuiz(attemptID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrAttemptNotFound
			}
			return err
		}
		if attempt.StudentID != studentID {
			return ErrNotAttemptOwner
		}
		if attempt.Status == model.AttemptCompleted {
			score := scoreDTO(attempt)
			resp = &dto.CurrentQuestionResponse{
				AttemptStatus: string(attempt.Status),
				Score:         &score,
			}
			return nil
		}

		if attempt.CurrentQuestion != nil && attempt.CurrentQuestion.IsActive {
			resp = &dto.CurrentQuestionResponse{
				AttemptStatus: string(attempt.Status),
				Question:      studentQuestionDTO(attempt.CurrentQuestion),
			}
			return nil
		}

		answeredIDs, err := s.answerRepo.WithTx(tx).ListQuestionIDs(attempt.ID)
		if err != nil {
			return err
		}
		question, err := s.selector.WithTx(tx).SelectNextQuestion(attempt, answeredIDs)
		if err != nil {
			return err
		}
		if question == nil {
			completeAttempt(attempt)
			if err := attemptRepo.Update(attempt); err != nil {
				return err
			}
			score := scoreDTO(attempt)
			resp = &dto.CurrentQuestionResponse{
				AttemptStatus: string(attempt.Status),
				Score:         &score,
			}
			return nil
		}

		attempt.CurrentQuestionID = &question.ID
		if err := attemptRepo.Update(attempt); err != nil {
			return err
		}
		resp = &dto.CurrentQuestionResponse{
			AttemptStatus: string(attempt.Status),
			Question:      studentQuestionDTO(question),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *attemptService) GetAttempt(attemptID, studentID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithQuiz(attemptID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotAttemptOwner
	}

	answers, err := s.answerRepo.FindAllByAttempt(attempt.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.AttemptDetailDTO{
		AttemptSummaryDTO: attemptSummaryDTO(attempt),
		CurrentQuestion:   studentQuestionDTO(attempt.CurrentQuestion),
		Answers:           make([]dto.AnswerDTO, 0, len(answers)),
	}
	for _, answer := range answers {
		detail.Answers = append(detail.Answers, dto.AnswerDTO{
			QuestionID:    answer.QuestionID,
			SelectedIndex: answer.SelectedIndex,
			IsCorrect:     answer.IsCorrect,
			AnsweredAt:    answer.AnsweredAt,
		})
	}
	return detail, nil
}

func (s *attemptService) ListAttempts(studentID uint, quizID *uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByStudent(studentID, quizID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, attemptSummaryDTO(&attempts[i]))
	}
	return summaries, nil
}

// completeAttempt moves an attempt to its terminal state and clears the
// current-question pointer, per the invariant that a COMPLETED attempt
// has no current question.
func completeAttempt(attempt *model.QuizAttempt) {
	now := time.Now()
	attempt.Status = model.AttemptCompleted
	attempt.EndedAt = &now
	attempt.CurrentQuestionID = nil
	attempt.CurrentQuestion = nil
}

func submitResponse(attempt *model.QuizAttempt, isCorrect bool, next *model.Question) *dto.SubmitAnswerResponse {
	return &dto.SubmitAnswerResponse{
		IsCorrect:     isCorrect,
		Completed:     attempt.IsFinished(),
		AttemptStatus: string(attempt.Status),
		Score:         scoreDTO(attempt),
		NextQuestion:  studentQuestionDTO(next),
	}
}

func scoreDTO(attempt *model.QuizAttempt) dto.ScoreDTO {
	score := attempt.CalculateScore()
	return dto.ScoreDTO{NumCorrect: score.NumCorrect, NumAnswered: score.NumAnswered}
}

func studentQuestionDTO(question *model.Question) *dto.StudentQuestionDTO {
	if question == nil {
		return nil
	}
	return &dto.StudentQuestionDTO{
		ID:         question.ID,
		Prompt:     question.Prompt,
		Choices:    question.Choices,
		Difficulty: string(question.Difficulty),
	}
}

func attemptSummaryDTO(attempt *model.QuizAttempt) dto.AttemptSummaryDTO {
	return dto.AttemptSummaryDTO{
		ID:                attempt.ID,
		QuizID:            attempt.QuizID,
		Status:            string(attempt.Status),
		CurrentDifficulty: string(attempt.CurrentDifficulty),
		Score:             scoreDTO(attempt),
		StartedAt:         attempt.StartedAt,
		EndedAt:           attempt.EndedAt,
	}
}
