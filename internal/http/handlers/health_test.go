package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(db Pinger, checks ...HealthCheck) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/readyz", NewHealthHandler(db, "test", checks...).Readiness)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		return w
	}
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("down") })

	assert.Equal(t, http.StatusOK, serve(ok).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(down).Code)

	w := serve(ok, HealthCheck{Name: "redis", Ping: down})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"degraded: down"`)
}
