package service

import (
	"context"
	"edulearn_backend/internal/util"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, 7, "quiz-1")
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))

	s := newSession(t, twoQuestions())
	require.NoError(t, s.SelectAnswer("q2", 1))
	require.NoError(t, s.Advance())
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, 7, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Current)
	assert.Equal(t, map[string]int{"q2": 1}, got.Answers)
	assert.Equal(t, 1, got.Questions[0].CorrectAnswer)

	// stored copy is detached from the caller's session
	got.Answers["q1"] = 0
	again, err := store.Get(ctx, 7, "quiz-1")
	require.NoError(t, err)
	assert.Len(t, again.Answers, 1)

	_, err = store.Get(ctx, 8, "quiz-1")
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))

	require.NoError(t, store.Delete(ctx, 7, "quiz-1"))
	_, err = store.Get(ctx, 7, "quiz-1")
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))
}

func TestMemorySessionStoreExpires(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession(t, twoQuestions())))
	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, 7, "quiz-1")
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))

	require.NoError(t, store.Save(ctx, newSession(t, twoQuestions())))
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Purge())
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "quiz_session:7:quiz-1", sessionKey(7, "quiz-1"))
}
