package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/validation"
)

// QuizService defines the interface for quiz operations. Answer keys are
// only returned to principals allowed to author quizzes.
type QuizService interface {
	Create(ctx context.Context, principal *auth.Principal, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	List(ctx context.Context, principal *auth.Principal) ([]*dto.QuizResponse, error)
	Get(ctx context.Context, principal *auth.Principal, id string) (*dto.QuizResponse, error)
}

type quizServiceImpl struct {
	quizRepo  repositories.QuizRepository
	publisher *events.Publisher
	logger    zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(quizRepo repositories.QuizRepository, publisher *events.Publisher, logger zerolog.Logger) QuizService {
	return &quizServiceImpl{
		quizRepo:  quizRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *quizServiceImpl) Create(ctx context.Context, principal *auth.Principal, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if err := principal.Can(auth.ActionCreate, auth.ResourceQuiz); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		idx := *q.CorrectIndex
		if idx >= len(q.Choices) {
			field := fmt.Sprintf("questions[%d].correct_index", i)
			msg := fmt.Sprintf("correct_index must be between 0 and %d", len(q.Choices)-1)
			return nil, apperrors.NewValidationError(msg).WithDetails(map[string]interface{}{field: msg})
		}

		choices := make([]string, len(q.Choices))
		for j, c := range q.Choices {
			choices[j] = strings.TrimSpace(c)
		}
		questions = append(questions, models.Question{
			Text:         strings.TrimSpace(q.Text),
			Choices:      choices,
			CorrectIndex: idx,
		})
	}

	quiz := &models.Quiz{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Questions:   questions,
		TimeLimit:   req.TimeLimit,
		CreatorID:   principal.UserID,
		CreatorName: principal.Name,
		IsActive:    true,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}

	s.logger.Info().Str("quizID", quiz.ID).Int("questions", len(questions)).Msg("Quiz created")
	s.publisher.Publish(ctx, events.QuizCreated, map[string]interface{}{
		"quizId":    quiz.ID,
		"title":     quiz.Title,
		"creatorId": quiz.CreatorID,
	})

	return dto.NewQuizResponse(quiz, true), nil
}

func (s *quizServiceImpl) List(ctx context.Context, principal *auth.Principal) ([]*dto.QuizResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceQuiz); err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}
	return dto.NewQuizResponses(quizzes, principal.SeesAnswers()), nil
}

func (s *quizServiceImpl) Get(ctx context.Context, principal *auth.Principal, id string) (*dto.QuizResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceQuiz); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuizNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrQuizNotFound, "quiz not found")
		}
		return nil, fmt.Errorf("error getting quiz: %w", err)
	}
	return dto.NewQuizResponse(quiz, principal.SeesAnswers()), nil
}
