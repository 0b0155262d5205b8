package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	calls   int
	err     error
	attempt *model.QuizAttempt
	answers []model.QuizAnswer
}

func (f *fakeWriter) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt, answers []model.QuizAnswer) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	attempt.ID = "attempt-1"
	for i := range answers {
		answers[i].QuizAttemptID = attempt.ID
	}
	f.attempt = attempt
	f.answers = answers
	return nil
}

func question(id string, correct int, options ...string) model.QuizQuestion {
	q := model.QuizQuestion{Question: "question " + id, Options: options, CorrectAnswer: correct}
	q.ID = id
	return q
}

func twoQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		question("q1", 1, "A", "B", "C"),
		question("q2", 0, "X", "Y"),
	}
}

func newSession(t *testing.T, qs []model.QuizQuestion) *AttemptSession {
	t.Helper()
	s, err := NewAttemptSession(7, "quiz-1", qs)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsEmptyQuiz(t *testing.T) {
	_, err := NewAttemptSession(7, "quiz-1", nil)
	assert.True(t, errors.Is(err, util.ErrQuizHasNoQuestions))
}

func TestNewSessionStartsAtFirstQuestion(t *testing.T) {
	s := newSession(t, twoQuestions())
	assert.Equal(t, StateAnswering, s.State)
	assert.Equal(t, 0, s.Current)
	assert.Empty(t, s.Answers)
	assert.Equal(t, "q1", s.CurrentQuestion().ID)
}

func TestSubmitRequiresEveryAnswer(t *testing.T) {
	s := newSession(t, twoQuestions())
	w := &fakeWriter{}

	require.NoError(t, s.SelectAnswer("q1", 1))
	_, err := s.Submit(context.Background(), w)
	assert.True(t, errors.Is(err, util.ErrIncompleteAnswers))
	assert.Equal(t, 0, w.calls)
	assert.Equal(t, StateAnswering, s.State)
	assert.Equal(t, 1, s.AnsweredCount())

	require.NoError(t, s.SelectAnswer("q2", 1))
	res, err := s.Submit(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, StateCompleted, s.State)
	assert.Len(t, res.Answers, 2)
}

func TestReselectOverwrites(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q1", 0))
	require.NoError(t, s.SelectAnswer("q1", 2))
	require.NoError(t, s.SelectAnswer("q1", 1))
	assert.Len(t, s.Answers, 1)
	assert.Equal(t, 1, s.Answers["q1"])
}

func TestSelectAnswerDoesNotMove(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q2", 1))
	assert.Equal(t, 0, s.Current)
}

func TestSelectAnswerRejectsUnknownInput(t *testing.T) {
	s := newSession(t, twoQuestions())
	assert.True(t, errors.Is(s.SelectAnswer("nope", 0), util.ErrQuestionNotInQuiz))
	assert.True(t, errors.Is(s.SelectAnswer("q2", 2), util.ErrOptionOutOfRange))
	assert.True(t, errors.Is(s.SelectAnswer("q2", -1), util.ErrOptionOutOfRange))
	assert.Empty(t, s.Answers)
}

func TestNavigationBounds(t *testing.T) {
	s := newSession(t, twoQuestions())
	assert.True(t, errors.Is(s.Retreat(), util.ErrNoPreviousQuestion))

	require.NoError(t, s.Advance())
	assert.Equal(t, 1, s.Current)
	assert.True(t, errors.Is(s.Advance(), util.ErrNoNextQuestion))
	assert.Equal(t, 1, s.Current)

	require.NoError(t, s.Retreat())
	assert.Equal(t, 0, s.Current)
}

func TestScoreIgnoresNavigationOrder(t *testing.T) {
	qs := []model.QuizQuestion{
		question("a", 0, "1", "2"),
		question("b", 1, "1", "2"),
		question("c", 1, "1", "2"),
	}

	forward := newSession(t, qs)
	require.NoError(t, forward.SelectAnswer("a", 0))
	require.NoError(t, forward.Advance())
	require.NoError(t, forward.SelectAnswer("b", 0))
	require.NoError(t, forward.Advance())
	require.NoError(t, forward.SelectAnswer("c", 1))

	jumping := newSession(t, qs)
	require.NoError(t, jumping.SelectAnswer("c", 0))
	require.NoError(t, jumping.SelectAnswer("b", 0))
	require.NoError(t, jumping.SelectAnswer("a", 0))
	require.NoError(t, jumping.SelectAnswer("c", 1))

	r1, err := forward.Submit(context.Background(), &fakeWriter{})
	require.NoError(t, err)
	r2, err := jumping.Submit(context.Background(), &fakeWriter{})
	require.NoError(t, err)

	assert.Equal(t, 2, r1.Attempt.Score)
	assert.Equal(t, r1.Attempt.Score, r2.Attempt.Score)
}

func TestScoreAnswersComparesIndices(t *testing.T) {
	qs := []model.QuizQuestion{
		question("a", 0, "same", "same"),
		question("b", 1, "x", "y"),
	}
	// option text is identical for a; only the index counts
	score, records := ScoreAnswers(qs, map[string]int{"a": 1, "b": 1})
	assert.Equal(t, 1, score)
	require.Len(t, records, 2)
	assert.False(t, records[0].IsCorrect)
	assert.True(t, records[1].IsCorrect)

	score, _ = ScoreAnswers(qs, map[string]int{})
	assert.Equal(t, 0, score)
}

func TestSubmitFailureIsRecoverable(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SelectAnswer("q2", 0))

	w := &fakeWriter{err: errors.New("connection reset")}
	_, err := s.Submit(context.Background(), w)
	require.Error(t, err)
	assert.Equal(t, StateSubmissionFailed, s.State)
	assert.NotEmpty(t, s.LastError)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, map[string]int{"q1": 1, "q2": 0}, s.Answers)

	w.err = nil
	res, err := s.Submit(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, 2, w.calls)
	assert.Equal(t, 2, res.Attempt.Score)
	assert.Equal(t, 2, res.Attempt.TotalQuestions)
	assert.Empty(t, s.LastError)
}

func TestEditAfterFailedSubmitReturnsToAnswering(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q1", 0))
	require.NoError(t, s.SelectAnswer("q2", 0))
	_, err := s.Submit(context.Background(), &fakeWriter{err: errors.New("boom")})
	require.Error(t, err)

	require.NoError(t, s.SelectAnswer("q1", 1))
	assert.Equal(t, StateAnswering, s.State)
}

func TestCompletedIsTerminal(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.SelectAnswer("q2", 0))
	w := &fakeWriter{}
	_, err := s.Submit(context.Background(), w)
	require.NoError(t, err)

	assert.True(t, errors.Is(s.SelectAnswer("q1", 0), util.ErrAttemptCompleted))
	assert.True(t, errors.Is(s.Advance(), util.ErrAttemptCompleted))
	assert.True(t, errors.Is(s.Retreat(), util.ErrAttemptCompleted))
	_, err = s.Submit(context.Background(), w)
	assert.True(t, errors.Is(err, util.ErrAttemptCompleted))
	assert.Equal(t, 1, w.calls)
}

func TestSubmitWritesAttemptWithFinalScore(t *testing.T) {
	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.SelectAnswer("q2", 1))
	w := &fakeWriter{}
	res, err := s.Submit(context.Background(), w)
	require.NoError(t, err)

	// the writer sees the final score on the first and only write
	assert.Equal(t, 1, w.attempt.Score)
	assert.Equal(t, uint(7), w.attempt.UserID)
	assert.Equal(t, "quiz-1", w.attempt.QuizID)
	assert.False(t, w.attempt.CompletedAt.IsZero())
	for _, a := range res.Answers {
		assert.Equal(t, "attempt-1", a.QuizAttemptID)
	}
	assert.Nil(t, s.Answers)
}
