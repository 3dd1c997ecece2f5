package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blog-api/pkg/logger"
	"blog-api/pkg/redis"
)

func setupThrottle(t *testing.T, cfg ThrottleConfig) (*miniredis.Miniredis, http.Handler) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	log, err := logger.New("error")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mr, Throttle(cfg, client, log)(next)
}

func TestThrottleLimitsPerClient(t *testing.T) {
	_, handler := setupThrottle(t, ThrottleConfig{
		Route:    "login",
		Requests: 3,
		Window:   time.Minute,
	})

	doRequest := func(remoteAddr string) int {
		r := httptest.NewRequest("POST", "/auth/google", nil)
		r.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest("198.51.100.1:4242"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest("198.51.100.1:4242"))

	// A different client has its own counter
	assert.Equal(t, http.StatusOK, doRequest("198.51.100.2:4242"))
}

func TestThrottleWindowResets(t *testing.T) {
	mr, handler := setupThrottle(t, ThrottleConfig{
		Route:    "login",
		Requests: 1,
		Window:   time.Minute,
	})

	doRequest := func() int {
		r := httptest.NewRequest("POST", "/auth/google", nil)
		r.RemoteAddr = "198.51.100.1:4242"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, doRequest())
	assert.Equal(t, http.StatusTooManyRequests, doRequest())

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, doRequest())
}

func TestThrottleDisabledWithoutRedis(t *testing.T) {
	log, err := logger.New("error")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Throttle(ThrottleConfig{Route: "login", Requests: 1, Window: time.Minute}, nil, log)(next)

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/auth/google", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
