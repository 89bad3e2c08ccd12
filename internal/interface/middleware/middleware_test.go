package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedEngine(t *testing.T, rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP())
	r.Use(RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow, nil))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedEngine(t, rdb, 2, nil)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/login", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "rate limit exceeded", body["message"])

	// windows are per client
	w = do(r, http.MethodPost, "/login", map[string]string{"X-Forwarded-For": "198.51.100.1"})
	assert.Equal(t, http.StatusOK, w.Code)

	mr.FastForward(2 * time.Minute)
	w = do(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitAllowAndFailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedEngine(t, rdb, 1, AnyAllow(nil, AllowPaths("/health")))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", nil).Code)
	}

	private := newLimitedEngine(t, rdb, 1, AllowPrivateIP())
	for i := 0; i < 3; i++ {
		w := do(private, http.MethodPost, "/login", map[string]string{"X-Real-IP": "10.0.0.5"})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil).Code)
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := newLimitedEngine(t, nil, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil).Code)
	}
}

func TestRequestIDEcho(t *testing.T) {
	r := newLimitedEngine(t, nil, 0, nil)
	w := do(r, http.MethodGet, "/health", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)

	incoming := "4b7c8d0e-1b9f-4c52-9f7e-2d5a3c6b8e10"
	w = do(r, http.MethodGet, "/health", map[string]string{RequestIDHeader: incoming})
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	w = do(r, http.MethodGet, "/health", map[string]string{RequestIDHeader: "<script>"})
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestAuth(t *testing.T) {
	tokens := helpers.NewJWTManager("test-secret", "")
	m := application.NewAccessMediator(tokens, nil)

	r := gin.New()
	r.GET("/me", Auth(m), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		require.True(t, ok)
		fromCtx, err := application.IdentityFrom(c.Request.Context())
		require.NoError(t, err)
		assert.Equal(t, id.UserID, fromCtx.UserID)
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(CtxUserIDKey)})
	})

	w := do(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")

	token, _, err := tokens.Issue("7", "ana@x.com")
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"7"}`, w.Body.String())
}

func TestLimiterAllow(t *testing.T) {
	mr := miniredis.RunT(t)
	l := &Limiter{RDB: redis.NewClient(&redis.Options{Addr: mr.Addr()}), Max: 2, Window: 30 * time.Second}
	ctx := context.Background()

	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, 30*time.Second, d.Reset)

	_, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
