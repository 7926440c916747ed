package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/evalua-app/evalua-api/internal/models"
)

// EvaluationRepository manages submitted evaluations. Rows are append-only
// except for the explicit edit flow, which swaps the answer list in place.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// List returns all evaluations in submission order.
func (r *EvaluationRepository) List(ctx context.Context) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	const query = `SELECT id, student_name, grade_id, teacher_id, subject_id, answers, timestamp FROM evaluations ORDER BY timestamp, id`
	if err := r.db.SelectContext(ctx, &evaluations, query); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return evaluations, nil
}

// ListByStudentAndGrade returns a student's evaluations within one grade.
// Matching is exact on the submitted name, no normalization.
func (r *EvaluationRepository) ListByStudentAndGrade(ctx context.Context, studentName string, gradeID int) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	const query = `SELECT id, student_name, grade_id, teacher_id, subject_id, answers, timestamp FROM evaluations
        WHERE student_name = $1 AND grade_id = $2 ORDER BY timestamp, id`
	if err := r.db.SelectContext(ctx, &evaluations, query, studentName, gradeID); err != nil {
		return nil, fmt.Errorf("list student evaluations: %w", err)
	}
	return evaluations, nil
}

// FindByID fetches one evaluation.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	const query = `SELECT id, student_name, grade_id, teacher_id, subject_id, answers, timestamp FROM evaluations WHERE id = $1`
	if err := r.db.GetContext(ctx, &evaluation, query, id); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// Create inserts a new evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if evaluation.ID == "" {
		evaluation.ID = uuid.NewString()
	}
	if evaluation.Timestamp.IsZero() {
		evaluation.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO evaluations (id, student_name, grade_id, teacher_id, subject_id, answers, timestamp)
        VALUES (:id, :student_name, :grade_id, :teacher_id, :subject_id, :answers, :timestamp)`
	if _, err := r.db.NamedExecContext(ctx, query, evaluation); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	return nil
}

// UpdateAnswers replaces an evaluation's answer list.
func (r *EvaluationRepository) UpdateAnswers(ctx context.Context, id string, answers models.AnswerList) error {
	const query = `UPDATE evaluations SET answers = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, answers); err != nil {
		return fmt.Errorf("update evaluation answers: %w", err)
	}
	return nil
}

// DeleteAll wipes every evaluation.
func (r *EvaluationRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("delete evaluations: %w", err)
	}
	return nil
}

// DeleteByStudent removes every evaluation submitted under the exact
// student name.
func (r *EvaluationRepository) DeleteByStudent(ctx context.Context, studentName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE student_name = $1`, studentName)
	if err != nil {
		return 0, fmt.Errorf("delete student evaluations: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted evaluations: %w", err)
	}
	return affected, nil
}
