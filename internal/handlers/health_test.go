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

type fakeHealth struct{ err error }

func (f fakeHealth) Health(context.Context) error { return f.err }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		db     fakeHealth
		cache  healthChecker
		status int
		want   map[string]any
	}{
		{"healthy without cache", fakeHealth{}, nil, http.StatusOK,
			map[string]any{"status": "healthy", "database": "connected"}},
		{"degraded cache", fakeHealth{}, fakeHealth{err: errors.New("down")}, http.StatusOK,
			map[string]any{"status": "healthy", "cache": "degraded"}},
		{"database down", fakeHealth{err: errors.New("down")}, nil, http.StatusServiceUnavailable,
			map[string]any{"status": "unhealthy", "database": "disconnected"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", HealthCheck(tt.db, tt.cache))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			body := decodeJSON(t, w)
			for k, v := range tt.want {
				assert.Equal(t, v, body[k], k)
			}
		})
	}
}

func TestHealthCheck_RealStore(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
