package controller

import (
	"bytes"
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/middleware"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/database"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router       *gin.Engine
	studentToken string
	adminToken   string
	book         *model.Book
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour}}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	student := &model.User{FullName: "Stu", Email: "stu@example.com", Password: "x", Role: model.Student}
	admin := &model.User{FullName: "Ada", Email: "ada@example.com", Password: "x", Role: model.Admin}
	require.NoError(t, users.Create(ctx, student))
	require.NoError(t, users.Create(ctx, admin))

	contentRepo := repository.NewContentRepository(db)
	book := &model.Book{Title: "Learning Go", Subject: "go"}
	require.NoError(t, contentRepo.CreateBook(ctx, book))

	quizzes := NewQuizController(service.NewQuizService(
		repository.NewQuizRepository(db), contentRepo, service.NewMemorySessionStore(time.Hour)))

	r := gin.New()
	api := r.Group("/api", middleware.AuthMiddleware(cfg))
	api.GET("/quizzes/:quizId", quizzes.GetQuiz)
	api.GET("/quizzes/:quizId/result", quizzes.GetResult)
	api.POST("/quizzes/:quizId/session", quizzes.StartSession)
	api.PUT("/quizzes/:quizId/session/answers", quizzes.SelectAnswer)
	api.POST("/quizzes/:quizId/session/next", quizzes.NextQuestion)
	api.POST("/quizzes/:quizId/session/submit", quizzes.SubmitQuiz)
	adminGroup := r.Group("/api/admin", middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	adminGroup.POST("/quizzes", quizzes.CreateQuiz)
	adminGroup.GET("/quizzes/:quizId/attempts", quizzes.ListAttempts)

	studentToken, err := util.GenerateJWT(student, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	adminToken, err := util.GenerateJWT(admin, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	return &apiFixture{router: r, studentToken: studentToken, adminToken: adminToken, book: book}
}

// envelope decodes util.Response with the payload left raw.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (f *apiFixture) createQuiz(t *testing.T) string {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/api/admin/quizzes", f.adminToken, gin.H{
		"title":       "Go basics",
		"contentType": "book",
		"contentId":   f.book.ID,
		"questions": []gin.H{
			{"question": "Which keyword starts a goroutine?", "options": []string{"defer", "go", "chan"}, "correctAnswer": 1},
			{"question": "Zero value of a map?", "options": []string{"nil", "empty map"}, "correctAnswer": 0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var quiz model.Quiz
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	return quiz.ID
}

func TestQuizAPIFlow(t *testing.T) {
	f := newAPIFixture(t)
	quizID := f.createQuiz(t)
	base := "/api/quizzes/" + quizID

	w, env := f.do(t, http.MethodGet, base, f.studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "correctAnswer")
	var view service.QuizView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Questions, 2)
	assert.Equal(t, service.QuizNotStarted, view.Status)
	assert.Equal(t, "Learning Go", view.ContentTitle)

	w, _ = f.do(t, http.MethodPost, base+"/session", f.studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = f.do(t, http.MethodPost, base+"/session/submit", f.studentToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, env.Message)

	w, _ = f.do(t, http.MethodPut, base+"/session/answers", f.studentToken,
		gin.H{"questionId": view.Questions[0].ID, "optionIndex": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = f.do(t, http.MethodPut, base+"/session/answers", f.studentToken,
		gin.H{"questionId": "not-a-question", "optionIndex": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = f.do(t, http.MethodPut, base+"/session/answers", f.studentToken,
		gin.H{"questionId": view.Questions[0].ID, "optionIndex": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, base+"/session/next", f.studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodPost, base+"/session/next", f.studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = f.do(t, http.MethodPut, base+"/session/answers", f.studentToken,
		gin.H{"questionId": view.Questions[1].ID, "optionIndex": 1})
	require.Equal(t, http.StatusOK, w.Code)
	var sess service.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.True(t, sess.CanSubmit)
	assert.True(t, sess.IsLast)

	w, env = f.do(t, http.MethodPost, base+"/session/submit", f.studentToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var review service.QuizReview
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, 1, review.Score)
	assert.Equal(t, 2, review.Total)
	assert.Equal(t, 50, review.Percentage)

	w, _ = f.do(t, http.MethodPost, base+"/session", f.studentToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = f.do(t, http.MethodGet, base+"/result", f.studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, 50, review.Percentage)

	w, env = f.do(t, http.MethodGet, "/api/admin/quizzes/"+quizID+"/attempts", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var attempts service.AttemptList
	require.NoError(t, json.Unmarshal(env.Data, &attempts))
	assert.EqualValues(t, 1, attempts.Total)
}

func TestQuizAPIErrors(t *testing.T) {
	f := newAPIFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/quizzes/missing", f.studentToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/quizzes/missing", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/admin/quizzes", f.studentToken, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/admin/quizzes", f.adminToken, gin.H{
		"title":       "Bad ref",
		"contentType": "book",
		"contentId":   "no-such-book",
		"questions": []gin.H{
			{"question": "Q", "options": []string{"a", "b"}, "correctAnswer": 0},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	quizID := f.createQuiz(t)
	w, _ = f.do(t, http.MethodGet, "/api/quizzes/"+quizID+"/result", f.studentToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
