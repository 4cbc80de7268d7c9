package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"earn_webapp/internal/logger"
	"earn_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Discard()

	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(204)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "net-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "net-abc", seen)
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service.InitJWT("mw-secret")

	r := gin.New()
	r.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.String(200, AdminSubject(c))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer nope").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Basic abc").Code)

	tok, err := service.GenerateAdminJWT("ops")
	require.NoError(t, err)
	w := do("Bearer " + tok)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "ops", w.Body.String())
}

func TestLocalLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/a", NewLocalLimiter(1, time.Minute).Middleware("admin"), func(c *gin.Context) { c.Status(204) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
	assert.Equal(t, 204, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
