package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// throttle caps how often each caller may speak to the resident. She
// answers one conversation at a time; a chatty client does not get to
// crowd out the rest. Fixed window per caller, swept lazily so there is
// no background goroutine to manage.
type throttle struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*callerWindow
}

type callerWindow struct {
	since time.Time
	seen  int
}

func newThrottle(limit int, window time.Duration) *throttle {
	return &throttle{
		limit:   limit,
		window:  window,
		clients: make(map[string]*callerWindow),
	}
}

// admit counts one request from key. When the caller is over budget it
// returns false and how long until their window reopens.
func (t *throttle) admit(key string, now time.Time) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw := t.clients[key]
	if cw == nil || now.Sub(cw.since) >= t.window {
		t.sweep(now)
		t.clients[key] = &callerWindow{since: now, seen: 1}
		return true, 0
	}
	cw.seen++
	if cw.seen <= t.limit {
		return true, 0
	}
	return false, cw.since.Add(t.window).Sub(now)
}

// sweep drops windows stale enough that their callers have moved on.
// Called with the lock held, and only when a window is already being
// replaced, so its cost rides on requests that pay for a map write
// anyway.
func (t *throttle) sweep(now time.Time) {
	for key, cw := range t.clients {
		if now.Sub(cw.since) >= 2*t.window {
			delete(t.clients, key)
		}
	}
}

// throttled wraps a handler with the server's chat throttle. Over-budget
// callers get 429 and a Retry-After.
func (s *Server) throttled(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, wait := s.chatThrottle.admit(clientIP(r), time.Now())
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		ip = ip[:i]
	}
	return ip
}
