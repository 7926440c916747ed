package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

func newStatisticsFixture() (*StatisticsService, *mockEvaluationRepo) {
	evaluations := &mockEvaluationRepo{evaluations: []models.Evaluation{
		{
			ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1",
			Answers: models.AnswerList{
				models.AnswerPrimary(models.RatingAlways),
				models.AnswerPrimary(models.RatingSometimes),
				models.AnswerPrimary(models.RatingAlways),
			},
		},
	}}
	grades := &mockGradeRepo{grades: []models.Grade{
		{ID: 1, Name: "5A", Level: models.LevelPrimary},
	}}
	teachers := &mockTeacherRepo{teachers: []models.Teacher{
		{ID: "t1", Name: "Laura Méndez"},
	}}
	subjects := &mockSubjectRepo{subjects: []models.Subject{
		{ID: "s1", Name: "Matemáticas"},
	}}
	questions := &mockQuestionRepo{byLevel: map[models.Level][]models.Question{
		models.LevelPrimary: {
			{ID: 1, Level: models.LevelPrimary, Order: 1, Text: "¿Explica con claridad?"},
			{ID: 2, Level: models.LevelPrimary, Order: 2, Text: "¿Llega puntual?"},
			{ID: 3, Level: models.LevelPrimary, Order: 3, Text: "¿Resuelve dudas?"},
		},
	}}

	svc := NewStatisticsService(evaluations, grades, teachers, subjects, questions, nil, nil)
	return svc, evaluations
}

func TestStatisticsServiceGeneral(t *testing.T) {
	svc, _ := newStatisticsFixture()

	summaries, err := svc.General(context.Background())
	require.NoError(t, err)
	primary := summaries[models.LevelPrimary]
	require.Len(t, primary, 1)
	assert.InDelta(t, 2.67, primary[0].Average, 0.001)
	assert.Equal(t, 1, primary[0].SurveyCount)
}

func TestStatisticsServiceTeacherQuestions(t *testing.T) {
	svc, _ := newStatisticsFixture()

	averages, err := svc.TeacherQuestions(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, averages, 3)
	assert.InDelta(t, 3.0, averages[0].Average, 0.001)
	assert.InDelta(t, 2.0, averages[1].Average, 0.001)
}

func TestStatisticsServiceTeacherQuestionsUnknownTeacher(t *testing.T) {
	svc, _ := newStatisticsFixture()

	_, err := svc.TeacherQuestions(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStatisticsServiceStudents(t *testing.T) {
	svc, _ := newStatisticsFixture()

	table, err := svc.Students(context.Background(), 1, "t1")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Ana (Matemáticas)", table.Rows[0].Header)
	assert.Equal(t, "Siempre", table.Rows[0].Cells[0])
}

func TestStatisticsServiceStudentsUnknownGrade(t *testing.T) {
	svc, _ := newStatisticsFixture()

	_, err := svc.Students(context.Background(), 42, "t1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
