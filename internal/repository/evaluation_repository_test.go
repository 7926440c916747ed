package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
)

func TestEvaluationRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectExec("INSERT INTO evaluations").
		WithArgs(sqlmock.AnyArg(), "Ana", 1, "t1", "s1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	evaluation := &models.Evaluation{
		StudentName: "Ana",
		GradeID:     1,
		TeacherID:   "t1",
		SubjectID:   "s1",
		Answers:     models.AnswerList{models.AnswerPrimary(models.RatingAlways)},
	}
	require.NoError(t, repo.Create(context.Background(), evaluation))
	assert.NotEmpty(t, evaluation.ID)
	assert.False(t, evaluation.Timestamp.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryListByStudentAndGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	answers, err := models.AnswerList{models.AnswerNumber(4)}.Value()
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "student_name", "grade_id", "teacher_id", "subject_id", "answers", "timestamp"}).
		AddRow("e1", "Ana", 1, "t1", "s1", answers, time.Now())
	mock.ExpectQuery("SELECT id, student_name, grade_id, teacher_id, subject_id, answers, timestamp FROM evaluations").
		WithArgs("Ana", 1).
		WillReturnRows(rows)

	list, err := repo.ListByStudentAndGrade(context.Background(), "Ana", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.AnswerNumber(4), list[0].Answers[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryUpdateAnswers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE evaluations SET answers = $2 WHERE id = $1")).
		WithArgs("e1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAnswers(context.Background(), "e1", models.AnswerList{models.AnswerNumber(2)})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryDeleteByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM evaluations WHERE student_name = $1")).
		WithArgs("Ana").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.DeleteByStudent(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
