package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalua-app/evalua-api/internal/models"
)

var primaryQuestions = []string{
	"¿El profesor explica con claridad?",
	"¿El profesor llega puntual?",
	"¿El profesor resuelve tus dudas?",
}

func TestNewSessionRejectsEmptyQuestionList(t *testing.T) {
	_, err := NewSession(models.LevelPrimary, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSessionRequiresAnswerBeforeAdvancing(t *testing.T) {
	s, err := NewSession(models.LevelPrimary, primaryQuestions)
	require.NoError(t, err)

	err = s.Next()
	assert.ErrorIs(t, err, ErrUnanswered)
	assert.Equal(t, 0, s.Index())

	s.Record(models.AnswerPrimary(models.RatingAlways))
	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Index())
}

func TestSessionFinishesAfterLastQuestion(t *testing.T) {
	s, err := NewSession(models.LevelHighSchool, []string{"q1", "q2"})
	require.NoError(t, err)

	s.Record(models.AnswerNumber(4))
	require.NoError(t, s.Next())
	assert.False(t, s.Finished())

	s.Record(models.AnswerNumber(2))
	require.NoError(t, s.Next())
	assert.True(t, s.Finished())

	answers, err := s.Answers()
	require.NoError(t, err)
	assert.Equal(t, []models.Answer{models.AnswerNumber(4), models.AnswerNumber(2)}, answers)
}

func TestSessionAnswersBeforeFinish(t *testing.T) {
	s, err := NewSession(models.LevelPrimary, primaryQuestions)
	require.NoError(t, err)

	_, err = s.Answers()
	assert.ErrorIs(t, err, ErrNotFinished)
}

func TestSessionPreviousRetreatsAndKeepsLaterAnswers(t *testing.T) {
	s, err := NewSession(models.LevelPrimary, primaryQuestions)
	require.NoError(t, err)

	s.Record(models.AnswerPrimary(models.RatingNever))
	require.NoError(t, s.Next())
	s.Record(models.AnswerPrimary(models.RatingSometimes))
	require.NoError(t, s.Next())

	s.Previous()
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, primaryQuestions[1], s.Current())

	// Replace the first answer, keep the second one untouched.
	s.Previous()
	s.Record(models.AnswerPrimary(models.RatingAlways))
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	answers, err := s.Answers()
	require.NoError(t, err)
	assert.Equal(t, models.AnswerPrimary(models.RatingAlways), answers[0])
	assert.Equal(t, models.AnswerPrimary(models.RatingSometimes), answers[1])
}

func TestSessionPreviousAtFirstQuestionStays(t *testing.T) {
	s, err := NewSession(models.LevelPrimary, primaryQuestions)
	require.NoError(t, err)

	s.Previous()
	assert.Equal(t, 0, s.Index())
}

func TestValidateAnswers(t *testing.T) {
	questions := []string{"q1", "q2"}

	t.Run("complete submission passes", func(t *testing.T) {
		answers, err := ValidateAnswers(models.LevelHighSchool, questions, []models.Answer{
			models.AnswerNumber(3),
			models.AnswerNumber(1),
		})
		require.NoError(t, err)
		assert.Len(t, answers, 2)
	})

	t.Run("missing answer rejected", func(t *testing.T) {
		_, err := ValidateAnswers(models.LevelHighSchool, questions, []models.Answer{
			models.AnswerNumber(3),
		})
		assert.ErrorIs(t, err, ErrUnanswered)
	})

	t.Run("null answer rejected", func(t *testing.T) {
		_, err := ValidateAnswers(models.LevelHighSchool, questions, []models.Answer{
			models.AnswerNumber(3),
			{},
		})
		assert.ErrorIs(t, err, ErrUnanswered)
	})

	t.Run("extra answers ignored", func(t *testing.T) {
		answers, err := ValidateAnswers(models.LevelHighSchool, questions, []models.Answer{
			models.AnswerNumber(3),
			models.AnswerNumber(1),
			models.AnswerNumber(2),
		})
		require.NoError(t, err)
		assert.Len(t, answers, 2)
	})

	t.Run("no questions configured", func(t *testing.T) {
		_, err := ValidateAnswers(models.LevelPrimary, nil, nil)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})
}
