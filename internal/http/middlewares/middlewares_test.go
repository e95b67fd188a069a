package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/items", ok)
	e.POST("/items", ok)
	return e
}

func serve(e *echo.Echo, method string) int {
	req := httptest.NewRequest(method, "/items", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterLimitsWritesOnly(t *testing.T) {
	e := newEcho(RateLimiter(2, time.Minute))

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost))
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet))
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	e := newEcho(RateLimiter(1, 20*time.Millisecond))

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost))
}

func TestRateLimiterRetryAfter(t *testing.T) {
	e := newEcho(RateLimiter(1, time.Minute))
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost))

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestWriteLimiterPerIPAndSweep(t *testing.T) {
	l := newWriteLimiter(1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_, ok := l.allow("10.0.0.1", now)
	assert.True(t, ok)
	_, ok = l.allow("10.0.0.2", now)
	assert.True(t, ok, "each client has its own window")

	wait, ok := l.allow("10.0.0.1", now.Add(15*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 45*time.Second, wait)

	_, ok = l.allow("10.0.0.1", now.Add(2*time.Minute))
	assert.True(t, ok)
	assert.Len(t, l.windows, 1, "expired windows are forgotten")
}

func TestAccessLog(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	e := newEcho(AccessLog())
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet))
	assert.Equal(t, http.StatusMethodNotAllowed, serve(e, http.MethodDelete))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, log.InfoLevel, entries[0].Level)
	assert.Equal(t, "/items", entries[0].Data["path"])
	assert.Equal(t, http.StatusNoContent, entries[0].Data["status"])

	assert.Equal(t, log.WarnLevel, entries[1].Level)
	assert.Equal(t, http.StatusMethodNotAllowed, entries[1].Data["status"])
}
