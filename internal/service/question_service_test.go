package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

func TestQuestionServiceReplaceRenumbers(t *testing.T) {
	repo := &mockQuestionRepo{}
	svc := NewQuestionService(repo, nil, nil, nil)

	questions, err := svc.Replace(context.Background(), models.LevelPrimary, ReplaceQuestionsRequest{
		Questions: []string{" ¿Explica con claridad? ", "¿Llega puntual?"},
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Order)
	assert.Equal(t, "¿Explica con claridad?", questions[0].Text)
	assert.Equal(t, 2, questions[1].Order)
}

func TestQuestionServiceReplaceRejectsEmptyText(t *testing.T) {
	repo := &mockQuestionRepo{}
	svc := NewQuestionService(repo, nil, nil, nil)

	_, err := svc.Replace(context.Background(), models.LevelPrimary, ReplaceQuestionsRequest{
		Questions: []string{"¿Explica con claridad?", "   "},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.replaced)
}

func TestQuestionServiceReplaceRejectsEmptyList(t *testing.T) {
	svc := NewQuestionService(&mockQuestionRepo{}, nil, nil, nil)

	_, err := svc.Replace(context.Background(), models.LevelPrimary, ReplaceQuestionsRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestQuestionServiceRejectsUnknownLevel(t *testing.T) {
	svc := NewQuestionService(&mockQuestionRepo{}, nil, nil, nil)

	_, err := svc.ListByLevel(context.Background(), models.Level("KINDER"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
