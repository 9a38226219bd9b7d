// Package middleware provides the HTTP middleware used by Medicart.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// window tracks a fixed-window request count for one client IP.
type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (w *window) allow(max int, span time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(span)
	}

	w.count++
	return w.count <= max
}

var (
	windowsMu sync.Mutex
	windows   = map[string]*window{}
)

func init() {
	// Evict expired windows once a minute so long-running servers do not
	// accumulate one entry per IP forever.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			windowsMu.Lock()
			for ip, w := range windows {
				w.mu.Lock()
				expired := now.After(w.resetAt)
				w.mu.Unlock()
				if expired {
					delete(windows, ip)
				}
			}
			windowsMu.Unlock()
		}
	}()
}

func clientWindow(ip string, span time.Duration) *window {
	windowsMu.Lock()
	defer windowsMu.Unlock()

	if w, ok := windows[ip]; ok {
		return w
	}

	w := &window{resetAt: time.Now().Add(span)}
	windows[ip] = w
	return w
}

// RateLimit limits each client IP to max requests per span.
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !clientWindow(ip, span).allow(max, span) {
				http.Error(w, `{"status":429,"message":"Too Many Requests"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
