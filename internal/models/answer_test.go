package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerListScanToleratesMixedValues(t *testing.T) {
	var answers AnswerList
	require.NoError(t, answers.Scan([]byte(`["ALWAYS", 3, null, "QUIZAS", 7]`)))
	require.Len(t, answers, 5)

	assert.Equal(t, AnswerPrimary(RatingAlways), answers[0])
	assert.Equal(t, AnswerNumber(3), answers[1])
	assert.True(t, answers[2].IsZero())
	assert.Equal(t, PrimaryRating("QUIZAS"), answers[3].Rating)
	assert.Equal(t, 7, answers[4].Value)
}

func TestAnswerListScanToleratesFractionalNumbers(t *testing.T) {
	var answers AnswerList
	require.NoError(t, answers.Scan([]byte(`[2.5, 4, -1.75]`)))
	require.Len(t, answers, 3)

	assert.True(t, answers[0].IsZero())
	assert.Equal(t, AnswerNumber(4), answers[1])
	assert.True(t, answers[2].IsZero())
}
