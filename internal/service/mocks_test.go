package service

import (
	"context"
	"database/sql"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/survey"
)

type mockEvaluationRepo struct {
	evaluations []models.Evaluation
	createErr   error
	updateErr   error
	deleteErr   error
	created     []*models.Evaluation
	updatedID   string
	updated     models.AnswerList
	deletedAll  bool
	deletedName string
}

func (m *mockEvaluationRepo) List(ctx context.Context) ([]models.Evaluation, error) {
	return m.evaluations, nil
}

func (m *mockEvaluationRepo) ListByStudentAndGrade(ctx context.Context, studentName string, gradeID int) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, ev := range m.evaluations {
		if ev.StudentName == studentName && ev.GradeID == gradeID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEvaluationRepo) FindByID(ctx context.Context, id string) (*models.Evaluation, error) {
	for i := range m.evaluations {
		if m.evaluations[i].ID == id {
			return &m.evaluations[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvaluationRepo) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if m.createErr != nil {
		return m.createErr
	}
	if evaluation.ID == "" {
		evaluation.ID = "generated"
	}
	m.created = append(m.created, evaluation)
	m.evaluations = append(m.evaluations, *evaluation)
	return nil
}

func (m *mockEvaluationRepo) UpdateAnswers(ctx context.Context, id string, answers models.AnswerList) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updated = answers
	return nil
}

func (m *mockEvaluationRepo) DeleteAll(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedAll = true
	m.evaluations = nil
	return nil
}

func (m *mockEvaluationRepo) DeleteByStudent(ctx context.Context, studentName string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.deletedName = studentName
	var kept []models.Evaluation
	var removed int64
	for _, ev := range m.evaluations {
		if ev.StudentName == studentName {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	m.evaluations = kept
	return removed, nil
}

type mockGradeRepo struct {
	grades []models.Grade
}

func (m *mockGradeRepo) List(ctx context.Context) ([]models.Grade, error) {
	return m.grades, nil
}

func (m *mockGradeRepo) FindByID(ctx context.Context, id int) (*models.Grade, error) {
	for i := range m.grades {
		if m.grades[i].ID == id {
			return &m.grades[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockTeacherRepo struct {
	teachers  []models.Teacher
	deletedID string
	deleteErr error
}

func (m *mockTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	return m.teachers, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	for i := range m.teachers {
		if m.teachers[i].ID == id {
			return &m.teachers[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = "generated"
	}
	m.teachers = append(m.teachers, *teacher)
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	for i := range m.teachers {
		if m.teachers[i].ID == teacher.ID {
			m.teachers[i] = *teacher
		}
	}
	return nil
}

func (m *mockTeacherRepo) DeleteCascade(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	var kept []models.Teacher
	for _, t := range m.teachers {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.teachers = kept
	return nil
}

type mockSubjectRepo struct {
	subjects []models.Subject
}

func (m *mockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	return m.subjects, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			return &m.subjects[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = "generated"
	}
	m.subjects = append(m.subjects, *subject)
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	for i := range m.subjects {
		if m.subjects[i].ID == subject.ID {
			m.subjects[i] = *subject
		}
	}
	return nil
}

func (m *mockSubjectRepo) UpdateIcon(ctx context.Context, id string, iconID, iconURL *string) error {
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			m.subjects[i].IconID = iconID
			m.subjects[i].IconURL = iconURL
		}
	}
	return nil
}

func (m *mockSubjectRepo) DeleteCascade(ctx context.Context, id string) error {
	var kept []models.Subject
	for _, s := range m.subjects {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.subjects = kept
	return nil
}

type mockQuestionRepo struct {
	byLevel  map[models.Level][]models.Question
	replaced map[models.Level][]string
}

func (m *mockQuestionRepo) ListByLevel(ctx context.Context, level models.Level) ([]models.Question, error) {
	return m.byLevel[level], nil
}

func (m *mockQuestionRepo) ReplaceForLevel(ctx context.Context, level models.Level, texts []string) error {
	if m.replaced == nil {
		m.replaced = make(map[models.Level][]string)
	}
	m.replaced[level] = texts
	questions := make([]models.Question, len(texts))
	for i, text := range texts {
		questions[i] = models.Question{ID: i + 1, Level: level, Order: i + 1, Text: text}
	}
	if m.byLevel == nil {
		m.byLevel = make(map[models.Level][]models.Question)
	}
	m.byLevel[level] = questions
	return nil
}

type mockSettings struct {
	flags map[string]bool
	rules []survey.RewriteRule
}

func (m *mockSettings) Flag(ctx context.Context, key string) (bool, error) {
	return m.flags[key], nil
}

func (m *mockSettings) RewriteRules(ctx context.Context) []survey.RewriteRule {
	return m.rules
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) InvalidateStatistics(ctx context.Context) error {
	m.calls++
	return nil
}
