package repository

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuiz(t *testing.T, repo *QuizRepository, texts ...string) (*model.Quiz, []model.QuizQuestion) {
	t.Helper()
	quiz := &model.Quiz{Title: "Go basics", ContentType: model.ContentBook, ContentID: "book-1", CreatedBy: 1}
	qs := make([]model.QuizQuestion, len(texts))
	for i, text := range texts {
		qs[i] = model.QuizQuestion{Question: text, Options: []string{"A", "B", "C"}, CorrectAnswer: i % 3}
	}
	require.NoError(t, repo.CreateQuizWithQuestions(context.Background(), quiz, qs))
	return quiz, qs
}

func TestListQuestionsKeepsCreationOrder(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	quiz, _ := seedQuiz(t, repo, "first", "second", "third", "fourth")

	got, err := repo.ListQuestions(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, want := range []string{"first", "second", "third", "fourth"} {
		assert.Equal(t, want, got[i].Question)
		assert.Equal(t, i, got[i].Position)
		assert.Equal(t, []string{"A", "B", "C"}, []string(got[i].Options))
	}
}

func TestFindQuizByIDNotFound(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	_, err := repo.FindQuizByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, util.ErrQuizNotFound))
}

func TestCreateAttemptIsAtomicAndUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "stu@example.com", model.Student)
	quiz, qs := seedQuiz(t, repo, "q1", "q2")

	none, err := repo.FindAttempt(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	attempt := &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 1, TotalQuestions: 2}
	answers := []model.QuizAnswer{
		{QuestionID: qs[0].ID, SelectedAnswer: 0, IsCorrect: true},
		{QuestionID: qs[1].ID, SelectedAnswer: 2, IsCorrect: false},
	}
	require.NoError(t, repo.CreateAttempt(ctx, attempt, answers))
	assert.NotEmpty(t, attempt.ID)
	assert.False(t, attempt.CompletedAt.IsZero())

	stored, err := repo.FindAttempt(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Score)
	assert.Equal(t, 2, stored.TotalQuestions)
	assert.Len(t, stored.Answers, 2)
	for _, a := range stored.Answers {
		assert.Equal(t, attempt.ID, a.QuizAttemptID)
	}

	second := &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 2, TotalQuestions: 2}
	err = repo.CreateAttempt(ctx, second, []model.QuizAnswer{{QuestionID: qs[0].ID}})
	assert.True(t, errors.Is(err, util.ErrQuizAlreadyAttempted))

	// the failed transaction must not leave answer rows behind
	var n int64
	require.NoError(t, db.Model(&model.QuizAnswer{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestListQuizzesWithCountsAndAttempts(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "ana@example.com", model.Student)

	quiz, qs := seedQuiz(t, repo, "q1", "q2", "q3")
	seedQuiz(t, repo, "only")

	rows, err := repo.ListQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.ID] = r.QuestionCount
	}
	assert.Equal(t, 3, counts[quiz.ID])

	require.NoError(t, repo.CreateAttempt(ctx,
		&model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 3, TotalQuestions: 3},
		[]model.QuizAnswer{{QuestionID: qs[0].ID, IsCorrect: true}}))

	list, total, err := repo.ListAttemptsForQuiz(ctx, quiz.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@example.com", list[0].UserEmail)
	assert.Equal(t, 3, list[0].Score)

	mine, err := repo.ListAttemptsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	nq, err := repo.CountQuizzes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nq)
	na, err := repo.CountAttempts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), na)
}
