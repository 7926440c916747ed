package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/survey"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

func newSurveyFixture() (*SurveyService, *mockEvaluationRepo, *mockSettings, *mockInvalidator) {
	evaluations := &mockEvaluationRepo{}
	grades := &mockGradeRepo{grades: []models.Grade{
		{
			ID: 1, Name: "5A", Level: models.LevelPrimary,
			Assignments: []models.TeachingAssignment{
				{TeacherID: "t1", SubjectID: "s1"},
				{TeacherID: "t2", SubjectID: "s2"},
			},
		},
	}}
	teachers := &mockTeacherRepo{teachers: []models.Teacher{
		{ID: "t1", Name: "Laura Méndez"},
		{ID: "t2", Name: "Jorge Salas"},
	}}
	subjects := &mockSubjectRepo{subjects: []models.Subject{
		{ID: "s1", Name: "Matemáticas"},
		{ID: "s2", Name: "Historia"},
	}}
	questions := &mockQuestionRepo{byLevel: map[models.Level][]models.Question{
		models.LevelPrimary: {
			{ID: 1, Level: models.LevelPrimary, Order: 1, Text: "¿Explica con claridad?"},
			{ID: 2, Level: models.LevelPrimary, Order: 2, Text: "¿Llega puntual?"},
			{ID: 3, Level: models.LevelPrimary, Order: 3, Text: "¿Resuelve dudas?"},
		},
	}}
	settings := &mockSettings{flags: map[string]bool{}}
	invalidator := &mockInvalidator{}

	svc := NewSurveyService(evaluations, grades, teachers, subjects, questions, settings, invalidator, nil, nil, nil)
	return svc, evaluations, settings, invalidator
}

func validSubmit() SubmitSurveyRequest {
	return SubmitSurveyRequest{
		StudentName: "Ana",
		GradeID:     1,
		TeacherID:   "t1",
		SubjectID:   "s1",
		Answers: []models.Answer{
			models.AnswerPrimary(models.RatingAlways),
			models.AnswerPrimary(models.RatingSometimes),
			models.AnswerPrimary(models.RatingAlways),
		},
	}
}

func TestSurveyServiceDashboard(t *testing.T) {
	svc, evaluations, _, _ := newSurveyFixture()
	evaluations.evaluations = []models.Evaluation{
		{ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
	}

	dashboard, err := svc.Dashboard(context.Background(), "Ana", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Completed)
	assert.Equal(t, 2, dashboard.Total)
	assert.Equal(t, survey.OutcomeSurveyRecorded, dashboard.Outcome)
}

func TestSurveyServiceDashboardUnknownGrade(t *testing.T) {
	svc, _, _, _ := newSurveyFixture()

	_, err := svc.Dashboard(context.Background(), "Ana", 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitRecordsAndReportsOutcome(t *testing.T) {
	svc, evaluations, _, invalidator := newSurveyFixture()

	result, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	require.Len(t, evaluations.created, 1)
	assert.Equal(t, survey.OutcomeSurveyRecorded, result.Outcome)
	assert.Equal(t, 1, invalidator.calls)

	// Second pending assignment completes the grade.
	second := validSubmit()
	second.TeacherID, second.SubjectID = "t2", "s2"
	result, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, survey.OutcomeGradeComplete, result.Outcome)
}

func TestSurveyServiceSubmitRejectsUnassignedPair(t *testing.T) {
	svc, evaluations, _, _ := newSurveyFixture()

	req := validSubmit()
	req.SubjectID = "s2"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, evaluations.created)
}

func TestSurveyServiceSubmitRejectsIncompleteAnswers(t *testing.T) {
	svc, evaluations, _, _ := newSurveyFixture()

	req := validSubmit()
	req.Answers = req.Answers[:2]
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, evaluations.created)
}

func TestSurveyServiceSubmitAppliesRewriteRules(t *testing.T) {
	svc, evaluations, settings, _ := newSurveyFixture()
	settings.flags[models.SettingTeacherFilter] = true
	settings.rules = []survey.RewriteRule{{
		TeacherID: "t1",
		Level:     models.LevelPrimary,
		SubjectID: "s1",
		From:      models.AnswerPrimary(models.RatingSometimes),
		To:        models.AnswerPrimary(models.RatingAlways),
	}}

	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	require.Len(t, evaluations.created, 1)
	assert.Equal(t, models.AnswerPrimary(models.RatingAlways), evaluations.created[0].Answers[1])
}

func TestSurveyServiceSubmitSkipsRewriteWhenDisabled(t *testing.T) {
	svc, evaluations, settings, _ := newSurveyFixture()
	settings.rules = survey.DefaultRewriteRules()

	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	assert.Equal(t, models.AnswerPrimary(models.RatingSometimes), evaluations.created[0].Answers[1])
}

func TestSurveyServiceSubmitFailsWithoutQuestions(t *testing.T) {
	svc, evaluations, _, _ := newSurveyFixture()
	grades := svc.grades.(*mockGradeRepo)
	grades.grades[0].Level = models.LevelHighSchool

	_, err := svc.Submit(context.Background(), validSubmit())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, evaluations.created)
}

func TestSurveyServiceEditReplacesAnswers(t *testing.T) {
	svc, evaluations, _, _ := newSurveyFixture()
	evaluations.evaluations = []models.Evaluation{{
		ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1",
		Answers: models.AnswerList{
			models.AnswerPrimary(models.RatingNever),
			models.AnswerPrimary(models.RatingNever),
			models.AnswerPrimary(models.RatingNever),
		},
	}}

	updated, err := svc.Edit(context.Background(), "e1", EditSurveyRequest{Answers: []models.Answer{
		models.AnswerPrimary(models.RatingAlways),
		models.AnswerPrimary(models.RatingAlways),
		models.AnswerPrimary(models.RatingAlways),
	}})
	require.NoError(t, err)
	assert.Equal(t, "e1", evaluations.updatedID)
	assert.Equal(t, models.AnswerPrimary(models.RatingAlways), updated.Answers[0])
}

func TestSurveyServiceEditAppliesRewriteRules(t *testing.T) {
	svc, evaluations, settings, _ := newSurveyFixture()
	settings.flags[models.SettingTeacherFilter] = true
	settings.rules = []survey.RewriteRule{{
		TeacherID: "t1",
		Level:     models.LevelPrimary,
		SubjectID: "s1",
		From:      models.AnswerPrimary(models.RatingNever),
		To:        models.AnswerPrimary(models.RatingSometimes),
	}}
	evaluations.evaluations = []models.Evaluation{{
		ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1",
		Answers: models.AnswerList{
			models.AnswerPrimary(models.RatingAlways),
			models.AnswerPrimary(models.RatingAlways),
			models.AnswerPrimary(models.RatingAlways),
		},
	}}

	updated, err := svc.Edit(context.Background(), "e1", EditSurveyRequest{Answers: []models.Answer{
		models.AnswerPrimary(models.RatingNever),
		models.AnswerPrimary(models.RatingNever),
		models.AnswerPrimary(models.RatingNever),
	}})
	require.NoError(t, err)
	for i := range updated.Answers {
		assert.Equal(t, models.AnswerPrimary(models.RatingSometimes), evaluations.updated[i], "answer %d", i)
	}
}

func TestSurveyServiceEditUnknownEvaluation(t *testing.T) {
	svc, _, _, _ := newSurveyFixture()

	_, err := svc.Edit(context.Background(), "missing", EditSurveyRequest{Answers: []models.Answer{
		models.AnswerPrimary(models.RatingAlways),
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceDeleteByStudent(t *testing.T) {
	svc, evaluations, _, invalidator := newSurveyFixture()
	evaluations.evaluations = []models.Evaluation{
		{ID: "e1", StudentName: "Ana", GradeID: 1},
		{ID: "e2", StudentName: "Ana", GradeID: 1},
		{ID: "e3", StudentName: "Pedro", GradeID: 1},
	}

	affected, err := svc.DeleteByStudent(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, 1, invalidator.calls)
}
