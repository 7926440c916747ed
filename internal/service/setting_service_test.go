package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type mockSettingRepo struct {
	settings map[string]json.RawMessage
}

func (m *mockSettingRepo) List(ctx context.Context) ([]models.Setting, error) {
	var out []models.Setting
	for key, value := range m.settings {
		out = append(out, models.Setting{Key: key, Value: value})
	}
	return out, nil
}

func (m *mockSettingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	value, ok := m.settings[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingRepo) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	if m.settings == nil {
		m.settings = make(map[string]json.RawMessage)
	}
	m.settings[key] = value
	return nil
}

func TestSettingServiceFlagDefaultsFalse(t *testing.T) {
	svc := NewSettingService(&mockSettingRepo{}, nil)

	enabled, err := svc.Flag(context.Background(), models.SettingGradeLock)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSettingServiceSetAndReadFlag(t *testing.T) {
	repo := &mockSettingRepo{}
	svc := NewSettingService(repo, nil)

	_, err := svc.Set(context.Background(), models.SettingTeacherFilter, json.RawMessage(`true`))
	require.NoError(t, err)

	enabled, err := svc.Flag(context.Background(), models.SettingTeacherFilter)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSettingServiceSetRejectsInvalidJSON(t *testing.T) {
	svc := NewSettingService(&mockSettingRepo{}, nil)

	_, err := svc.Set(context.Background(), models.SettingGradeLock, json.RawMessage(`{broken`))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingServiceRewriteRulesFallBackToDefaults(t *testing.T) {
	svc := NewSettingService(&mockSettingRepo{}, nil)

	rules := svc.RewriteRules(context.Background())
	require.Len(t, rules, 2)
	assert.Equal(t, "t1", rules[0].TeacherID)
}

func TestSettingServiceRewriteRulesFromStore(t *testing.T) {
	repo := &mockSettingRepo{settings: map[string]json.RawMessage{
		models.SettingRewriteRules: json.RawMessage(`[{"teacherId":"t9","level":"PRIMARY","from":"NEVER","to":"ALWAYS"}]`),
	}}
	svc := NewSettingService(repo, nil)

	rules := svc.RewriteRules(context.Background())
	require.Len(t, rules, 1)
	assert.Equal(t, "t9", rules[0].TeacherID)
	assert.Equal(t, models.AnswerPrimary(models.RatingAlways), rules[0].To)
}
