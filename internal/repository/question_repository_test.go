package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
)

func TestQuestionRepositoryListByLevel(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "level", "question_order", "text"}).
		AddRow(1, "PRIMARY", 1, "¿Explica con claridad?").
		AddRow(2, "PRIMARY", 2, "¿Llega puntual?")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, level, question_order, text FROM questions WHERE level = $1 ORDER BY question_order")).
		WithArgs(models.LevelPrimary).
		WillReturnRows(rows)

	questions, err := repo.ListByLevel(context.Background(), models.LevelPrimary)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Order)
	assert.Equal(t, "¿Llega puntual?", questions[1].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryReplaceForLevelRenumbers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions WHERE level = $1")).
		WithArgs(models.LevelHighSchool).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO questions").
		WithArgs(models.LevelHighSchool, 1, "¿Domina la materia?").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO questions").
		WithArgs(models.LevelHighSchool, 2, "¿Fomenta la participación?").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.ReplaceForLevel(context.Background(), models.LevelHighSchool, []string{
		"¿Domina la materia?",
		"¿Fomenta la participación?",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryReplaceForLevelRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions WHERE level = $1")).
		WithArgs(models.LevelPrimary).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO questions").
		WithArgs(models.LevelPrimary, 1, "¿Explica con claridad?").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceForLevel(context.Background(), models.LevelPrimary, []string{"¿Explica con claridad?"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
