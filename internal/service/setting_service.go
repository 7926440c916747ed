package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/survey"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

type settingRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) error
}

// SettingService manages the global flags and the rewrite rule set.
type SettingService struct {
	repo   settingRepository
	logger *zap.Logger
}

// NewSettingService creates a new setting service.
func NewSettingService(repo settingRepository, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{repo: repo, logger: logger}
}

// List returns every setting row.
func (s *SettingService) List(ctx context.Context) ([]models.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}
	return settings, nil
}

// Flag reads a boolean setting; absent keys read as false.
func (s *SettingService) Flag(ctx context.Context, key string) (bool, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read setting")
	}
	return setting.Bool(), nil
}

// Set writes one setting. The value must be valid JSON.
func (s *SettingService) Set(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error) {
	if key == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "setting key is required")
	}
	if !json.Valid(value) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "setting value must be valid JSON")
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write setting")
	}
	return &models.Setting{Key: key, Value: value}, nil
}

// RewriteRules loads the configured answer rewrite rules, falling back to
// the shipped defaults when the setting is absent or unreadable.
func (s *SettingService) RewriteRules(ctx context.Context) []survey.RewriteRule {
	setting, err := s.repo.Get(ctx, models.SettingRewriteRules)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to read rewrite rules, using defaults", zap.Error(err))
		}
		return survey.DefaultRewriteRules()
	}
	var rules []survey.RewriteRule
	if err := json.Unmarshal(setting.Value, &rules); err != nil {
		s.logger.Warn("malformed rewrite rules, using defaults", zap.Error(err))
		return survey.DefaultRewriteRules()
	}
	return rules
}
