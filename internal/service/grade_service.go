package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type gradeRepository interface {
	List(ctx context.Context) ([]models.Grade, error)
	FindByID(ctx context.Context, id int) (*models.Grade, error)
}

// GradeService exposes the grade catalog. Grades are seeded data in this
// deployment; the admin edits assignments, not the cohort list itself.
type GradeService struct {
	repo   gradeRepository
	logger *zap.Logger
}

// NewGradeService creates a new grade service.
func NewGradeService(repo gradeRepository, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, logger: logger}
}

// List returns all grades with embedded assignments.
func (s *GradeService) List(ctx context.Context) ([]models.Grade, error) {
	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// Get returns one grade.
func (s *GradeService) Get(ctx context.Context, id int) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	return grade, nil
}
