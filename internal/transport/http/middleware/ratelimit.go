package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ems/internal/transport/http/api"
)

// RateLimitKeyFunc names the bucket a request is counted against.
type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*windowLimiter)

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(l *windowLimiter) {
		if fn != nil {
			l.key = fn
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) RateLimitOption {
	return func(l *windowLimiter) {
		if now != nil {
			l.now = now
		}
	}
}

// RateLimit applies a fixed-window request budget per caller. Signed-in
// callers are counted by user id, everyone else by client address.
func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	l := newWindowLimiter(limit, window, actorOrIPKey, opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.admit(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type sensitiveRule struct {
	match    func(path string) bool
	limiters []*windowLimiter
}

// SensitiveMutationRateLimit adds tighter budgets on top of RateLimit for
// logins and for writes that touch employee records or salaries. Logins get a
// quarter of the base budget, counted both per address and per username.
// Writes get half, counted per actor.
func SensitiveMutationRateLimit(baseLimit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	loginBudget := max(baseLimit/4, 1)
	writeBudget := max(baseLimit/2, 1)
	rules := []sensitiveRule{
		{
			match: func(path string) bool { return path == "/auth/login" },
			limiters: []*windowLimiter{
				newWindowLimiter(loginBudget, window, clientIPKey, opts...),
				newWindowLimiter(loginBudget, window, AuthFieldOrIPKey("username"), opts...),
			},
		},
		{
			match: func(path string) bool {
				return path == "/payroll/raises/apply" || path == "/employees" || strings.HasPrefix(path, "/employees/")
			},
			limiters: []*windowLimiter{newWindowLimiter(writeBudget, window, actorOrIPKey, opts...)},
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isMutation(r.Method) {
				path := apiPath(r.URL.Path)
				for _, rule := range rules {
					if !rule.match(path) {
						continue
					}
					for _, l := range rule.limiters {
						if !l.admit(w, r) {
							return
						}
					}
					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthFieldOrIPKey keys login attempts on a JSON body field, so one account
// cannot be brute forced from many addresses.
func AuthFieldOrIPKey(field string) RateLimitKeyFunc {
	field = strings.TrimSpace(field)
	if field == "" {
		field = "username"
	}
	return func(r *http.Request) string {
		if value := peekJSONField(r, field); value != "" {
			return field + ":" + strings.ToLower(value)
		}
		return clientIPKey(r)
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID > 0 {
		return "user:" + strconv.FormatInt(user.UserID, 10)
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

type window struct {
	count   int
	resetAt time.Time
}

type windowLimiter struct {
	limit  int
	period time.Duration
	key    RateLimitKeyFunc
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	nextSweep time.Time
}

func newWindowLimiter(limit int, period time.Duration, key RateLimitKeyFunc, opts ...RateLimitOption) *windowLimiter {
	l := &windowLimiter{
		limit:   limit,
		period:  period,
		key:     key,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// take counts one request against key and reports whether it fits, how many
// requests remain and when the window resets.
func (l *windowLimiter) take(key string) (bool, int, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, win := range l.windows {
			if now.After(win.resetAt) {
				delete(l.windows, k)
			}
		}
		l.nextSweep = now.Add(l.period)
	}

	win, ok := l.windows[key]
	if !ok || now.After(win.resetAt) {
		win = &window{resetAt: now.Add(l.period)}
		l.windows[key] = win
	}
	win.count++
	return win.count <= l.limit, max(l.limit-win.count, 0), win.resetAt.Sub(now)
}

func (l *windowLimiter) admit(w http.ResponseWriter, r *http.Request) bool {
	if l.limit <= 0 {
		return true
	}
	key := l.key(r)
	if key == "" {
		key = clientIPKey(r)
	}
	ok, remaining, resetIn := l.take(key)

	resetSec := ceilSeconds(resetIn)
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if ok {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
	slog.Warn("rate limit exceeded", "key", key, "method", r.Method, "path", r.URL.Path, "limit", l.limit)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// peekJSONField reads a string field from a JSON body and restores the body
// for the next handler.
func peekJSONField(r *http.Request, field string) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return strings.TrimSpace(value)
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func apiPath(path string) string {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/api/v1")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
