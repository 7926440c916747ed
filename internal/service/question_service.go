package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type questionRepository interface {
	ListByLevel(ctx context.Context, level models.Level) ([]models.Question, error)
	ReplaceForLevel(ctx context.Context, level models.Level, texts []string) error
}

// ReplaceQuestionsRequest carries a level's full question list in its new
// order.
type ReplaceQuestionsRequest struct {
	Questions []string `json:"questions" validate:"required,min=1"`
}

// QuestionService handles the level-scoped question catalogs.
type QuestionService struct {
	repo      questionRepository
	cache     statisticsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuestionService creates a new question service.
func NewQuestionService(repo questionRepository, cache statisticsInvalidator, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListByLevel returns the level's questions in order.
func (s *QuestionService) ListByLevel(ctx context.Context, level models.Level) ([]models.Question, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown level")
	}
	questions, err := s.repo.ListByLevel(ctx, level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list questions")
	}
	return questions, nil
}

// TextsByLevel returns just the ordered question texts.
func (s *QuestionService) TextsByLevel(ctx context.Context, level models.Level) ([]string, error) {
	questions, err := s.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	return texts, nil
}

// Replace swaps the level's question list. Every text must be non-empty;
// nothing is persisted otherwise. Answer positions of past evaluations are
// untouched, so reordering re-labels history.
func (s *QuestionService) Replace(ctx context.Context, level models.Level, req ReplaceQuestionsRequest) ([]models.Question, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown level")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid questions payload")
	}
	texts := make([]string, len(req.Questions))
	for i, text := range req.Questions {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "question text cannot be empty")
		}
		texts[i] = text
	}
	if err := s.repo.ReplaceForLevel(ctx, level, texts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace questions")
	}
	if s.cache != nil {
		if err := s.cache.InvalidateStatistics(ctx); err != nil {
			s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
		}
	}
	return s.ListByLevel(ctx, level)
}
