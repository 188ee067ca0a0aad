package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmarais/go-autoquote/pkg/problem"
)

// RateLimiter is a simple per-IP sliding-window limiter kept in process
// memory.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, times := range rl.requests {
				var live []time.Time
				for _, t := range times {
					if now.Sub(t) < rl.window {
						live = append(live, t)
					}
				}
				if len(live) == 0 {
					delete(rl.requests, ip)
				} else {
					rl.requests[ip] = live
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	var live []time.Time
	for _, t := range rl.requests[ip] {
		if now.Sub(t) < rl.window {
			live = append(live, t)
		}
	}
	if len(live) >= rl.limit {
		rl.requests[ip] = live
		return false
	}
	rl.requests[ip] = append(live, now)
	return true
}

// Handler enforces the limit per client IP.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.allow(ip) {
			problem.Write(w, http.StatusTooManyRequests,
				"Too Many Requests", "Rate limit exceeded, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
