package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// RateLimiter allows limit writes per client IP in every window. Reads are
// never limited. A rejected write gets 429 and a Retry-After header.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	l := newWriteLimiter(limit, window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !mutating(c.Request().Method) {
				return next(c)
			}

			ip := c.RealIP()
			wait, ok := l.allow(ip, time.Now())
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				log.WithFields(log.Fields{
					"remote_ip": ip,
					"method":    c.Request().Method,
					"path":      c.Request().URL.Path,
				}).Warn("rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

type ipWindow struct {
	writes int
	opened time.Time
}

type writeLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	windows   map[string]*ipWindow
	lastSweep time.Time
}

func newWriteLimiter(limit int, window time.Duration) *writeLimiter {
	return &writeLimiter{limit: limit, window: window, windows: make(map[string]*ipWindow)}
}

// allow records one write from ip. When the window of ip is full it reports
// how long until the window reopens.
func (l *writeLimiter) allow(ip string, now time.Time) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	w, ok := l.windows[ip]
	if !ok || now.Sub(w.opened) >= l.window {
		w = &ipWindow{opened: now}
		l.windows[ip] = w
	}
	if w.writes >= l.limit {
		return w.opened.Add(l.window).Sub(now), false
	}
	w.writes++
	return 0, true
}

// sweep forgets expired windows, at most once per window length.
func (l *writeLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for ip, w := range l.windows {
		if now.Sub(w.opened) >= l.window {
			delete(l.windows, ip)
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
