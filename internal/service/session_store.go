package service

import (
	"context"
	"edulearn_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps in-progress quiz sessions between requests, keyed by
// user and quiz.
type SessionStore interface {
	Get(ctx context.Context, userID uint, quizID string) (*AttemptSession, error)
	Save(ctx context.Context, s *AttemptSession) error
	Delete(ctx context.Context, userID uint, quizID string) error
}

const quizSessionKeyPrefix = "quiz_session:"

func sessionKey(userID uint, quizID string) string {
	return fmt.Sprintf("%s%d:%s", quizSessionKeyPrefix, userID, quizID)
}

type RedisSessionStore struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Redis: rdb, TTL: ttl}
}

func (r *RedisSessionStore) Get(ctx context.Context, userID uint, quizID string) (*AttemptSession, error) {
	data, err := r.Redis.Get(ctx, sessionKey(userID, quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s AttemptSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode quiz session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *AttemptSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, sessionKey(s.UserID, s.QuizID), data, r.TTL).Err()
}

func (r *RedisSessionStore) Delete(ctx context.Context, userID uint, quizID string) error {
	return r.Redis.Del(ctx, sessionKey(userID, quizID)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore is a process-local SessionStore. Sessions are stored
// serialized so callers never share a live *AttemptSession.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemorySessionStore) Get(_ context.Context, userID uint, quizID string) (*AttemptSession, error) {
	key := sessionKey(userID, quizID)
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && m.ttl > 0 && m.now().After(e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	var s AttemptSession
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, fmt.Errorf("decode quiz session: %w", err)
	}
	return &s, nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *AttemptSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[sessionKey(s.UserID, s.QuizID)] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, userID uint, quizID string) error {
	m.mu.Lock()
	delete(m.entries, sessionKey(userID, quizID))
	m.mu.Unlock()
	return nil
}

// Purge drops expired sessions and reports how many were removed.
func (m *MemorySessionStore) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if m.ttl > 0 && now.After(e.expiresAt) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}
