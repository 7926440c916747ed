package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/stats"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type statsEvaluationRepository interface {
	List(ctx context.Context) ([]models.Evaluation, error)
}

// StatisticsService computes the three report aggregates over a snapshot
// of the evaluation history. Results are cached; every mutation elsewhere
// invalidates the whole stats namespace.
type StatisticsService struct {
	evaluations statsEvaluationRepository
	grades      gradeRepository
	teachers    teacherRepository
	subjects    subjectRepository
	questions   questionRepository
	cache       *CacheService
	logger      *zap.Logger
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(
	evaluations statsEvaluationRepository,
	grades gradeRepository,
	teachers teacherRepository,
	subjects subjectRepository,
	questions questionRepository,
	cache *CacheService,
	logger *zap.Logger,
) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{
		evaluations: evaluations,
		grades:      grades,
		teachers:    teachers,
		subjects:    subjects,
		questions:   questions,
		cache:       cache,
		logger:      logger,
	}
}

// Snapshot loads the full catalog and history and flattens it into answer
// rows keyed by teacher id, plus the per-level question lists.
func (s *StatisticsService) Snapshot(ctx context.Context) ([]stats.AnswerRow, map[models.Level][]string, error) {
	evaluations, err := s.evaluations.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	grades, err := s.grades.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	questions, err := s.questionCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	return stats.Flatten(evaluations, grades, teachers, subjects, questions), questions, nil
}

// General returns the per-level teacher summaries.
func (s *StatisticsService) General(ctx context.Context) (map[models.Level][]stats.TeacherSummary, error) {
	const key = "stats:general"
	cached := make(map[models.Level][]stats.TeacherSummary)
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	rows, _, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summaries := stats.GeneralSummaries(rows)
	if err := s.cache.Set(ctx, key, summaries, 0); err != nil {
		s.logger.Warn("failed to cache general statistics", zap.Error(err))
	}
	return summaries, nil
}

// TeacherQuestions returns per-question averages for one teacher.
func (s *StatisticsService) TeacherQuestions(ctx context.Context, teacherID string) ([]stats.QuestionAverage, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	key := fmt.Sprintf("stats:teacher:%s", teacherID)
	var cached []stats.QuestionAverage
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	rows, questions, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	averages := stats.TeacherQuestionAverages(rows, teacherID, questions)
	if err := s.cache.Set(ctx, key, averages, 0); err != nil {
		s.logger.Warn("failed to cache teacher statistics", zap.Error(err))
	}
	return averages, nil
}

// Students returns the per-student answer table for one grade and teacher.
func (s *StatisticsService) Students(ctx context.Context, gradeID int, teacherID string) (*stats.StudentTable, error) {
	if _, err := s.grades.FindByID(ctx, gradeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}

	key := fmt.Sprintf("stats:students:%d:%s", gradeID, teacherID)
	var cached stats.StudentTable
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	rows, questions, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	table := stats.BuildStudentTable(rows, strconv.Itoa(gradeID), teacherID, questions)
	if err := s.cache.Set(ctx, key, table, 0); err != nil {
		s.logger.Warn("failed to cache student statistics", zap.Error(err))
	}
	return &table, nil
}

func (s *StatisticsService) questionCatalog(ctx context.Context) (map[models.Level][]string, error) {
	catalog := make(map[models.Level][]string, 2)
	for _, level := range []models.Level{models.LevelPrimary, models.LevelHighSchool} {
		questions, err := s.questions.ListByLevel(ctx, level)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load questions")
		}
		texts := make([]string, len(questions))
		for i, q := range questions {
			texts[i] = q.Text
		}
		catalog[level] = texts
	}
	return catalog, nil
}
