package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// LimitStore counts requests per key. Allow records one request and reports
// whether it fits within limit per window; when it does not, retryAfter says
// how long the caller should wait.
type LimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (ok bool, retryAfter time.Duration, err error)
}

// RateLimit rejects requests over limit per window per client address with
// 429 and a Retry-After header. Store errors are logged and the request is
// let through.
func RateLimit(store LimitStore, scope string, limit int, window time.Duration, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ctxutil.ClientIPFromCtx(r.Context())
			if ip == "" {
				ip = clientIP(r)
			}

			ok, retryAfter, err := store.Allow(r.Context(), scope+":"+ip, limit, window)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limit store unavailable",
					slog.String("scope", scope),
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				secs := int(math.Ceil(retryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MemoryStore is an in-process LimitStore using one token bucket per key.
// A bucket holds limit tokens and refills at limit per window.
type MemoryStore struct {
	buckets sync.Map // map[string]*bucket
	stop    chan struct{}
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewMemoryStore creates a store with background cleanup of idle buckets.
// Call Stop() on shutdown.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{stop: make(chan struct{})}
	go s.cleanup(cleanupInterval)
	return s
}

// Stop terminates the background cleanup goroutine.
func (s *MemoryStore) Stop() {
	close(s.stop)
}

// Allow implements LimitStore.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	maxTokens := float64(limit)
	val, _ := s.buckets.LoadOrStore(key, &bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: maxTokens / window.Seconds(),
		lastRefill: time.Now(),
	})
	ok, wait := val.(*bucket).take()
	return ok, wait, nil
}

func (b *bucket) take() (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate, b.maxTokens)
	b.lastRefill = now

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return false, time.Duration(missing / b.refillRate * float64(time.Second))
	}
	b.tokens--
	return true, 0
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastRefill)
				b.mu.Unlock()
				if idle > 10*time.Minute {
					s.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
