package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/dto"
)

func idempotentRouter(t *testing.T, status int, calls *int32) *gin.Engine {
	t.Helper()
	cfg := NewIdempotencyConfig(time.Minute)
	t.Cleanup(cfg.Stop)

	router := gin.New()
	router.Use(Idempotency(cfg))
	handler := func(c *gin.Context) {
		n := atomic.AddInt32(calls, 1)
		c.JSON(status, gin.H{"call": n})
	}
	router.POST("/api/assignments", handler)
	router.GET("/api/assignments", handler)
	return router
}

func send(router *gin.Engine, method, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/assignments", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	var calls int32
	router := idempotentRouter(t, http.StatusCreated, &calls)

	first := send(router, http.MethodPost, "key-1", `{"kit_id":"k","quantity":10}`)
	second := send(router, http.MethodPost, "key-1", `{"kit_id":"k","quantity":10}`)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotency_RunsHandler(t *testing.T) {
	tests := []struct {
		name string
		run  func(*gin.Engine)
	}{
		{"no key", func(r *gin.Engine) {
			send(r, http.MethodPost, "", `{}`)
			send(r, http.MethodPost, "", `{}`)
		}},
		{"different body", func(r *gin.Engine) {
			send(r, http.MethodPost, "key", `{"quantity":1}`)
			send(r, http.MethodPost, "key", `{"quantity":2}`)
		}},
		{"GET is not cached", func(r *gin.Engine) {
			send(r, http.MethodGet, "key", "")
			send(r, http.MethodGet, "key", "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			tt.run(idempotentRouter(t, http.StatusCreated, &calls))
			assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		})
	}
}

func TestIdempotency_DoesNotCacheFailures(t *testing.T) {
	var calls int32
	router := idempotentRouter(t, http.StatusServiceUnavailable, &calls)

	send(router, http.MethodPost, "key", `{}`)
	w := send(router, http.MethodPost, "key", `{}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	cfg := NewIdempotencyConfig(time.Minute)
	t.Cleanup(cfg.Stop)

	started := make(chan struct{})
	release := make(chan struct{})
	router := gin.New()
	router.Use(Idempotency(cfg))
	router.POST("/api/assignments", func(c *gin.Context) {
		close(started)
		<-release
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- send(router, http.MethodPost, "slow", `{}`) }()
	<-started

	w := send(router, http.MethodPost, "slow", `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeConflict, decodeError(t, w).Error)

	close(release)
	require.Equal(t, http.StatusCreated, (<-done).Code)
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	c := newIdempotencyCache(time.Minute)
	t.Cleanup(c.Stop)
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	resp, busy := c.begin("k")
	assert.Nil(t, resp)
	assert.False(t, busy)
	c.finish("k", &cachedResponse{StatusCode: http.StatusCreated})

	resp, _ = c.begin("k")
	require.NotNil(t, resp)

	now = now.Add(2 * time.Minute)
	resp, busy = c.begin("k")
	assert.Nil(t, resp)
	assert.False(t, busy)
	c.finish("k", nil)

	c.finish("old", &cachedResponse{})
	now = now.Add(2 * time.Minute)
	c.cleanup()
	assert.Empty(t, c.items)
}
