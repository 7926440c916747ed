package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/survey"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type surveyEvaluationRepository interface {
	ListByStudentAndGrade(ctx context.Context, studentName string, gradeID int) ([]models.Evaluation, error)
	FindByID(ctx context.Context, id string) (*models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	UpdateAnswers(ctx context.Context, id string, answers models.AnswerList) error
	DeleteAll(ctx context.Context) error
	DeleteByStudent(ctx context.Context, studentName string) (int64, error)
}

type surveySettings interface {
	Flag(ctx context.Context, key string) (bool, error)
	RewriteRules(ctx context.Context) []survey.RewriteRule
}

// SubmitSurveyRequest is one student's completed questionnaire.
type SubmitSurveyRequest struct {
	StudentName string          `json:"studentName" validate:"required"`
	GradeID     int             `json:"gradeId" validate:"required"`
	TeacherID   string          `json:"teacherId" validate:"required"`
	SubjectID   string          `json:"subjectId" validate:"required"`
	Answers     []models.Answer `json:"answers" validate:"required,min=1"`
}

// EditSurveyRequest replaces a stored evaluation's answers.
type EditSurveyRequest struct {
	Answers []models.Answer `json:"answers" validate:"required,min=1"`
}

// Dashboard is the student-facing progress view for one grade.
type Dashboard struct {
	Grade       *models.Grade               `json:"grade"`
	Assignments []survey.AssignmentProgress `json:"assignments"`
	Completed   int                         `json:"completed"`
	Total       int                         `json:"total"`
	Outcome     survey.Outcome              `json:"outcome"`
}

// SubmitResult pairs the stored evaluation with the flow outcome.
type SubmitResult struct {
	Evaluation *models.Evaluation `json:"evaluation"`
	Outcome    survey.Outcome     `json:"outcome"`
}

// SurveyService drives the student flow: resolving assignments, tracking
// completion, validating submissions and recording evaluations.
type SurveyService struct {
	evaluations surveyEvaluationRepository
	grades      gradeRepository
	teachers    teacherRepository
	subjects    subjectRepository
	questions   questionRepository
	settings    surveySettings
	cache       statisticsInvalidator
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSurveyService creates a new survey service.
func NewSurveyService(
	evaluations surveyEvaluationRepository,
	grades gradeRepository,
	teachers teacherRepository,
	subjects subjectRepository,
	questions questionRepository,
	settings surveySettings,
	cache statisticsInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *SurveyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{
		evaluations: evaluations,
		grades:      grades,
		teachers:    teachers,
		subjects:    subjects,
		questions:   questions,
		settings:    settings,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Dashboard resolves the grade's valid assignments and marks each one
// completed or pending for the student.
func (s *SurveyService) Dashboard(ctx context.Context, studentName string, gradeID int) (*Dashboard, error) {
	if studentName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}
	grade, teachers, subjects, err := s.loadCatalog(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	history, err := s.evaluations.ListByStudentAndGrade(ctx, studentName, gradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}

	progress := survey.Progress(*grade, teachers, subjects, history, studentName)
	return &Dashboard{
		Grade:       grade,
		Assignments: progress,
		Completed:   survey.CompletedCount(progress),
		Total:       len(progress),
		Outcome:     survey.ResolveOutcome(progress),
	}, nil
}

// Submit validates and records one evaluation, returning the stored row
// and where the flow lands afterwards. A persistence failure leaves no
// trace: the evaluation either fully lands or the error surfaces.
func (s *SurveyService) Submit(ctx context.Context, req SubmitSurveyRequest) (*SubmitResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}

	grade, teachers, subjects, err := s.loadCatalog(ctx, req.GradeID)
	if err != nil {
		return nil, err
	}
	if !assignmentExists(survey.Resolve(*grade, teachers, subjects), req.TeacherID, req.SubjectID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher is not assigned to this subject in the grade")
	}

	texts, err := s.questionTexts(ctx, grade.Level)
	if err != nil {
		return nil, err
	}
	answers, err := survey.ValidateAnswers(grade.Level, texts, req.Answers)
	if err != nil {
		if errors.Is(err, survey.ErrNoQuestions) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "no questions configured for this level")
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "every question needs an answer")
	}

	filterEnabled, err := s.settings.Flag(ctx, models.SettingTeacherFilter)
	if err != nil {
		return nil, err
	}
	answers = survey.ApplyRewrites(s.settings.RewriteRules(ctx), filterEnabled, req.TeacherID, grade.Level, req.SubjectID, answers)

	evaluation := &models.Evaluation{
		StudentName: req.StudentName,
		GradeID:     req.GradeID,
		TeacherID:   req.TeacherID,
		SubjectID:   req.SubjectID,
		Answers:     answers,
	}
	if err := s.evaluations.Create(ctx, evaluation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store evaluation")
	}

	s.metrics.RecordSurveySubmission(grade.Level)
	s.invalidate(ctx)

	history, err := s.evaluations.ListByStudentAndGrade(ctx, req.StudentName, req.GradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload evaluations")
	}
	progress := survey.Progress(*grade, teachers, subjects, history, req.StudentName)
	return &SubmitResult{Evaluation: evaluation, Outcome: survey.ResolveOutcome(progress)}, nil
}

// Edit replaces a stored evaluation's answers after re-validating them
// against the grade's question list.
func (s *SurveyService) Edit(ctx context.Context, id string, req EditSurveyRequest) (*models.Evaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}
	evaluation, err := s.evaluations.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}
	grade, err := s.grades.FindByID(ctx, evaluation.GradeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	texts, err := s.questionTexts(ctx, grade.Level)
	if err != nil {
		return nil, err
	}
	answers, err := survey.ValidateAnswers(grade.Level, texts, req.Answers)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "every question needs an answer")
	}

	filterEnabled, err := s.settings.Flag(ctx, models.SettingTeacherFilter)
	if err != nil {
		return nil, err
	}
	answers = survey.ApplyRewrites(s.settings.RewriteRules(ctx), filterEnabled, evaluation.TeacherID, grade.Level, evaluation.SubjectID, answers)

	if err := s.evaluations.UpdateAnswers(ctx, id, answers); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluation")
	}
	evaluation.Answers = answers
	s.invalidate(ctx)
	return evaluation, nil
}

// DeleteAll wipes every evaluation.
func (s *SurveyService) DeleteAll(ctx context.Context) error {
	if err := s.evaluations.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evaluations")
	}
	s.invalidate(ctx)
	return nil
}

// DeleteByStudent removes every evaluation the exact student name
// submitted and reports how many went away.
func (s *SurveyService) DeleteByStudent(ctx context.Context, studentName string) (int64, error) {
	if studentName == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}
	affected, err := s.evaluations.DeleteByStudent(ctx, studentName)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evaluations")
	}
	s.invalidate(ctx)
	return affected, nil
}

func (s *SurveyService) loadCatalog(ctx context.Context, gradeID int) (*models.Grade, []models.Teacher, []models.Subject, error) {
	grade, err := s.grades.FindByID(ctx, gradeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return grade, teachers, subjects, nil
}

func (s *SurveyService) questionTexts(ctx context.Context, level models.Level) ([]string, error) {
	questions, err := s.questions.ListByLevel(ctx, level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list questions")
	}
	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	return texts, nil
}

func (s *SurveyService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStatistics(ctx); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}

func assignmentExists(resolved []survey.ResolvedAssignment, teacherID, subjectID string) bool {
	for _, ra := range resolved {
		if ra.Teacher.ID == teacherID && ra.Subject.ID == subjectID {
			return true
		}
	}
	return false
}
