package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"superhero-pets/internal/platform/logger"

	"golang.org/x/time/rate"
)

// RateLimiter limita requests por IP (token bucket por clave).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	log      logger.Logger
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int, log logger.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		log:      log,
		now:      time.Now,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = rl.now()
	return e.limiter
}

// Handler responde 429 cuando la IP excede su cuota.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r.RemoteAddr)
		if rl.limiterFor(key).Allow() {
			next.ServeHTTP(w, r)
			return
		}

		if rl.log != nil {
			rl.log.Warn("rate limit exceeded", map[string]any{
				"key":    key,
				"path":   r.URL.Path,
				"method": r.Method,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "demasiadas solicitudes, intenta más tarde"})
	})
}

// Prune elimina limiters sin uso desde hace más de idle.
func (rl *RateLimiter) Prune(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	n := 0
	for k, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, k)
			n++
		}
	}
	return n
}

// StartPruning ejecuta Prune periódicamente hasta que stop se cierre.
func (rl *RateLimiter) StartPruning(interval, idle time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Prune(idle)
			case <-stop:
				return
			}
		}
	}()
}

func clientKey(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
