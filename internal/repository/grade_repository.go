package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/evalua-app/evalua-api/internal/models"
)

// GradeRepository manages grades and their teaching assignments.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns all grades with their assignments embedded, ordered by id.
func (r *GradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, `SELECT id, name, level FROM grades ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}

	var assignments []models.GradeAssignment
	if err := r.db.SelectContext(ctx, &assignments, `SELECT grade_id, teacher_id, subject_id FROM grade_assignments ORDER BY grade_id, teacher_id, subject_id`); err != nil {
		return nil, fmt.Errorf("list grade assignments: %w", err)
	}

	byGrade := make(map[int][]models.TeachingAssignment)
	for _, a := range assignments {
		byGrade[a.GradeID] = append(byGrade[a.GradeID], models.TeachingAssignment{
			TeacherID: a.TeacherID,
			SubjectID: a.SubjectID,
		})
	}
	for i := range grades {
		grades[i].Assignments = byGrade[grades[i].ID]
	}
	return grades, nil
}

// FindByID fetches one grade with its assignments.
func (r *GradeRepository) FindByID(ctx context.Context, id int) (*models.Grade, error) {
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, `SELECT id, name, level FROM grades WHERE id = $1`, id); err != nil {
		return nil, err
	}
	var assignments []models.TeachingAssignment
	if err := r.db.SelectContext(ctx, &assignments, `SELECT teacher_id, subject_id FROM grade_assignments WHERE grade_id = $1 ORDER BY teacher_id, subject_id`, id); err != nil {
		return nil, fmt.Errorf("load grade assignments: %w", err)
	}
	grade.Assignments = assignments
	return &grade, nil
}

// ReplaceTeacherAssignments swaps out every assignment of one teacher for
// the provided set, across all grades, in one transaction.
func (r *GradeRepository) ReplaceTeacherAssignments(ctx context.Context, teacherID string, assignments []models.GradeAssignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace assignments: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM grade_assignments WHERE teacher_id = $1`, teacherID); err != nil {
		return fmt.Errorf("clear teacher assignments: %w", err)
	}

	const query = `INSERT INTO grade_assignments (grade_id, teacher_id, subject_id) VALUES (:grade_id, :teacher_id, :subject_id)`
	for _, a := range assignments {
		a.TeacherID = teacherID
		if _, err = tx.NamedExecContext(ctx, query, a); err != nil {
			return fmt.Errorf("insert teacher assignment: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace assignments: %w", err)
	}
	return nil
}
