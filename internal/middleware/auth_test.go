package middleware

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", AuthMiddleware(cfg))
	authed.GET("/me", func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	authed.GET("/admin", RoleMiddleware(model.Admin), func(c *gin.Context) {
		util.Success(c, "ok")
	})
	authed.GET("/students", RoleMiddleware(model.Student), func(c *gin.Context) {
		util.Success(c, "ok")
	})
	return r
}

func token(t *testing.T, cfg *config.Config, id uint, role model.UserRole) string {
	t.Helper()
	u := &model.User{Email: "u@example.com", Role: role}
	u.ID = id
	tok, err := util.GenerateJWT(u, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func get(r *gin.Engine, path, tok string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthAndRoles(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-test-secret-0123456789"}}
	r := newRouter(cfg)
	student := token(t, cfg, 1, model.Student)
	admin := token(t, cfg, 2, model.Admin)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "garbage"))
	assert.Equal(t, http.StatusOK, get(r, "/me", student))
	assert.Equal(t, http.StatusOK, get(r, "/me?token="+student, ""))

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", student))
	assert.Equal(t, http.StatusOK, get(r, "/admin", admin))
	assert.Equal(t, http.StatusOK, get(r, "/students", student))
	assert.Equal(t, http.StatusOK, get(r, "/students", admin))

	other := &config.Config{JWT: config.JWTConfig{Secret: "another-secret-another-secret-00"}}
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", token(t, other, 1, model.Student)))
}

type seenRecorder chan uint

func (s seenRecorder) UpdateLastSeen(_ context.Context, userID uint) error {
	s <- userID
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-test-secret-0123456789"}}
	seen := make(seenRecorder, 1)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), ActivityMiddleware(seen), func(c *gin.Context) {
		util.Success(c, nil)
	})

	require.Equal(t, http.StatusOK, get(r, "/me", token(t, cfg, 9, model.Student)))
	select {
	case id := <-seen:
		assert.Equal(t, uint(9), id)
	case <-time.After(2 * time.Second):
		t.Fatal("last seen was not recorded")
	}

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", ""))
	select {
	case id := <-seen:
		t.Fatalf("unexpected activity for %d", id)
	case <-time.After(50 * time.Millisecond):
	}
}
