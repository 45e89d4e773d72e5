package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"clinic-booking-service/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// Interval between sweeps of idle buckets
	limiterCleanupInterval = 5 * time.Minute

	// How long a bucket must be unused before it is dropped
	limiterIdleThreshold = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per authenticated user. It must
// run after AuthMiddleware; anonymous requests share the client address bucket.
// Idle buckets are swept in the background. Call Stop during shutdown.
type RateLimitMiddleware struct {
	limit rate.Limit
	burst int
	log   *logrus.Logger

	mu       sync.Mutex
	visitors map[string]*visitor

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewRateLimitMiddleware(requestsPerSecond float64, burst int, log *logrus.Logger) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		log:      log,
		visitors: make(map[string]*visitor),
		stopChan: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (m *RateLimitMiddleware) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		m.wg.Wait()
	}
}

func (m *RateLimitMiddleware) limiter(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case now := <-ticker.C:
			if evicted := m.evictIdle(now); evicted > 0 {
				m.log.Debugf("Evicted %d idle rate limit buckets", evicted)
			}
		}
	}
}

// evictIdle drops buckets not used since now minus limiterIdleThreshold.
func (m *RateLimitMiddleware) evictIdle(now time.Time) int {
	cutoff := now.Add(-limiterIdleThreshold)

	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted int
	for key, v := range m.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(m.visitors, key)
			evicted++
		}
	}
	return evicted
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if userID, ok := GetUserIDFromContext(r.Context()); ok {
			key = userID.String()
		}

		if !m.limiter(key, time.Now()).Allow() {
			m.log.WithField("client", key).Warn("Rate limit exceeded")
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
