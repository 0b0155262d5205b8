package service

import (
	"context"
	"edulearn_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highlights(q QuestionReview) []OptionHighlight {
	out := make([]OptionHighlight, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Highlight
	}
	return out
}

func submitted(t *testing.T, picks map[string]int) (*AttemptSession, *AttemptResult) {
	t.Helper()
	s := newSession(t, twoQuestions())
	for id, idx := range picks {
		require.NoError(t, s.SelectAnswer(id, idx))
	}
	res, err := s.Submit(context.Background(), &fakeWriter{})
	require.NoError(t, err)
	return s, res
}

func TestReviewHalfRight(t *testing.T) {
	s, res := submitted(t, map[string]int{"q1": 1, "q2": 1})
	review := BuildReview(s.Questions, *res)

	assert.Equal(t, 1, review.Score)
	assert.Equal(t, 2, review.Total)
	assert.Equal(t, 50, review.Percentage)
	require.Len(t, review.Questions, 2)

	q1 := review.Questions[0]
	assert.True(t, q1.IsCorrect)
	assert.Equal(t, []OptionHighlight{HighlightNeutral, HighlightCorrect, HighlightNeutral}, highlights(q1))

	q2 := review.Questions[1]
	assert.False(t, q2.IsCorrect)
	require.NotNil(t, q2.SelectedAnswer)
	assert.Equal(t, 1, *q2.SelectedAnswer)
	assert.Equal(t, 0, q2.CorrectAnswer)
	assert.Equal(t, []OptionHighlight{HighlightCorrect, HighlightIncorrectPick}, highlights(q2))
}

func TestReviewAllCorrect(t *testing.T) {
	s, res := submitted(t, map[string]int{"q1": 1, "q2": 0})
	review := BuildReview(s.Questions, *res)

	assert.Equal(t, 2, review.Score)
	assert.Equal(t, 100, review.Percentage)
	for _, q := range review.Questions {
		assert.True(t, q.IsCorrect)
		assert.NotContains(t, highlights(q), HighlightIncorrectPick)
	}
}

func TestReviewQuestionWithoutAnswerRecord(t *testing.T) {
	qs := twoQuestions()
	result := AttemptResult{
		Attempt: model.QuizAttempt{Score: 1, TotalQuestions: 2},
		Answers: []model.QuizAnswer{{QuestionID: "q1", SelectedAnswer: 1, IsCorrect: true}},
	}
	review := BuildReview(qs, result)

	q2 := review.Questions[1]
	assert.False(t, q2.Answered)
	assert.Nil(t, q2.SelectedAnswer)
	assert.Equal(t, []OptionHighlight{HighlightCorrect, HighlightNeutral}, highlights(q2))
}

func TestReviewZeroTotal(t *testing.T) {
	review := BuildReview(nil, AttemptResult{})
	assert.Equal(t, 0, review.Percentage)
	assert.Empty(t, review.Questions)
}
