package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type mockAssignmentRepo struct {
	teacherID   string
	assignments []models.GradeAssignment
	err         error
}

func (m *mockAssignmentRepo) ReplaceTeacherAssignments(ctx context.Context, teacherID string, assignments []models.GradeAssignment) error {
	if m.err != nil {
		return m.err
	}
	m.teacherID = teacherID
	m.assignments = assignments
	return nil
}

func TestTeacherServiceCreateTrimsName(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := NewTeacherService(repo, &mockAssignmentRepo{}, nil, nil, nil)

	teacher, err := svc.Create(context.Background(), SaveTeacherRequest{Name: "  Laura Méndez  "})
	require.NoError(t, err)
	assert.Equal(t, "Laura Méndez", teacher.Name)
	assert.NotEmpty(t, teacher.ID)
}

func TestTeacherServiceCreateRequiresName(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, &mockAssignmentRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), SaveTeacherRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceDeleteCascadesAndInvalidates(t *testing.T) {
	repo := &mockTeacherRepo{teachers: []models.Teacher{{ID: "t1", Name: "Laura Méndez"}}}
	invalidator := &mockInvalidator{}
	svc := NewTeacherService(repo, &mockAssignmentRepo{}, invalidator, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	assert.Equal(t, "t1", repo.deletedID)
	assert.Equal(t, 1, invalidator.calls)
}

func TestTeacherServiceDeleteUnknown(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, &mockAssignmentRepo{}, nil, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceReplaceAssignments(t *testing.T) {
	repo := &mockTeacherRepo{teachers: []models.Teacher{{ID: "t1", Name: "Laura Méndez"}}}
	assignments := &mockAssignmentRepo{}
	svc := NewTeacherService(repo, assignments, nil, nil, nil)

	req := ReplaceAssignmentsRequest{Assignments: []models.GradeAssignment{
		{GradeID: 1, SubjectID: "s1"},
		{GradeID: 2, SubjectID: "s2"},
	}}
	require.NoError(t, svc.ReplaceAssignments(context.Background(), "t1", req))
	assert.Equal(t, "t1", assignments.teacherID)
	assert.Len(t, assignments.assignments, 2)
}
