package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
)

func fixtureGrade() (models.Grade, []models.Teacher, []models.Subject) {
	teachers := []models.Teacher{
		{ID: "t1", Name: "Laura Méndez"},
		{ID: "t2", Name: "Jorge Salas"},
	}
	subjects := []models.Subject{
		{ID: "s1", Name: "Matemáticas"},
		{ID: "s2", Name: "Historia"},
	}
	grade := models.Grade{
		ID:    1,
		Name:  "5A",
		Level: models.LevelPrimary,
		Assignments: []models.TeachingAssignment{
			{TeacherID: "t1", SubjectID: "s1"},
			{TeacherID: "t2", SubjectID: "s2"},
		},
	}
	return grade, teachers, subjects
}

func TestProgressMarksCompletedAssignments(t *testing.T) {
	grade, teachers, subjects := fixtureGrade()
	history := []models.Evaluation{
		{ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
	}

	progress := Progress(grade, teachers, subjects, history, "Ana")

	require.Len(t, progress, 2)
	assert.True(t, progress[0].Completed)
	assert.False(t, progress[1].Completed)
	assert.Equal(t, 1, CompletedCount(progress))
	assert.Equal(t, OutcomeSurveyRecorded, ResolveOutcome(progress))
}

func TestProgressIgnoresOtherStudentsAndGrades(t *testing.T) {
	grade, teachers, subjects := fixtureGrade()
	history := []models.Evaluation{
		{ID: "e1", StudentName: "Pedro", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
		{ID: "e2", StudentName: "Ana", GradeID: 9, TeacherID: "t1", SubjectID: "s1"},
	}

	progress := Progress(grade, teachers, subjects, history, "Ana")

	assert.Equal(t, 0, CompletedCount(progress))
}

func TestProgressCountsDuplicateEvaluationsOnce(t *testing.T) {
	grade, teachers, subjects := fixtureGrade()
	history := []models.Evaluation{
		{ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
		{ID: "e2", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
		{ID: "e3", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
	}

	progress := Progress(grade, teachers, subjects, history, "Ana")

	assert.Equal(t, 1, CompletedCount(progress))
	assert.LessOrEqual(t, CompletedCount(progress), len(progress))
}

func TestProgressSkipsDanglingPairsInCompletionMath(t *testing.T) {
	grade, teachers, subjects := fixtureGrade()
	grade.Assignments = append(grade.Assignments, models.TeachingAssignment{
		TeacherID: "deleted", SubjectID: "s1",
	})
	history := []models.Evaluation{
		{ID: "e1", StudentName: "Ana", GradeID: 1, TeacherID: "t1", SubjectID: "s1"},
		{ID: "e2", StudentName: "Ana", GradeID: 1, TeacherID: "t2", SubjectID: "s2"},
	}

	progress := Progress(grade, teachers, subjects, history, "Ana")

	// The dangling pair never counts toward the total, so the grade is done.
	require.Len(t, progress, 2)
	assert.Equal(t, OutcomeGradeComplete, ResolveOutcome(progress))
}

func TestResolveOutcomeNothingToEvaluate(t *testing.T) {
	grade := models.Grade{ID: 3, Name: "2C", Level: models.LevelHighSchool}

	progress := Progress(grade, nil, nil, nil, "Ana")

	assert.Equal(t, OutcomeNothingToEvaluate, ResolveOutcome(progress))
}
