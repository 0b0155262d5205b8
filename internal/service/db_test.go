package service

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/pkg/database"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}
}

type fixture struct {
	db       *gorm.DB
	quizzes  *QuizService
	content  *ContentService
	sessions *MemorySessionStore
	student  *model.User
	book     *model.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig(t)
	contentRepo := repository.NewContentRepository(db)
	sessions := NewMemorySessionStore(time.Hour)

	student := &model.User{FullName: "Stu", Email: "stu@example.com", Password: "x", Role: model.Student}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), student))
	book := &model.Book{Title: "Learning Go", Subject: "go"}
	require.NoError(t, contentRepo.CreateBook(context.Background(), book))

	return &fixture{
		db:       db,
		quizzes:  NewQuizService(repository.NewQuizRepository(db), contentRepo, sessions),
		content:  NewContentService(contentRepo, NewStorageService(cfg), cfg),
		sessions: sessions,
		student:  student,
		book:     book,
	}
}

func intp(i int) *int { return &i }

// createQuiz makes the two-question quiz used across tests:
// q1 correct=1, q2 correct=0.
func (f *fixture) createQuiz(t *testing.T) *model.Quiz {
	t.Helper()
	quiz, err := f.quizzes.CreateQuiz(context.Background(), 1, &CreateQuizReq{
		Title:       "Go basics",
		ContentType: string(model.ContentBook),
		ContentID:   f.book.ID,
		Questions: []CreateQuestionReq{
			{Question: "Which keyword starts a goroutine?", Options: []string{"defer", "go", "chan"}, CorrectAnswer: intp(1)},
			{Question: "Zero value of a map?", Options: []string{"nil", "empty map"}, CorrectAnswer: intp(0)},
		},
	})
	require.NoError(t, err)
	return quiz
}
