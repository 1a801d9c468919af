package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed login attempts per email with a rolling
// window. It gates login before credential verification.
type LoginLimiter interface {
	// IsLimited reports whether the email has hit the failure threshold
	// within the window.
	IsLimited(ctx context.Context, email string) bool
	// RecordFailure counts one failed attempt and refreshes the window.
	RecordFailure(ctx context.Context, email string)
	// Clear drops any tracked failures, called after a successful login.
	Clear(ctx context.Context, email string)
}

type failureEntry struct {
	count int
	last  time.Time
}

// MemoryLimiter keeps failure counts in a single process's memory.
// Expiry is lazy: stale entries are dropped on the next check rather
// than by a background sweep. State is not shared across instances;
// for multi-instance deployments use RedisLimiter.
type MemoryLimiter struct {
	threshold int
	window    time.Duration

	mu      sync.Mutex
	entries map[string]*failureEntry
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter with the given failure threshold
// and rolling window.
func NewMemoryLimiter(threshold int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		threshold: threshold,
		window:    window,
		entries:   make(map[string]*failureEntry),
		now:       time.Now,
	}
}

// IsLimited implements LoginLimiter.
func (l *MemoryLimiter) IsLimited(_ context.Context, email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[email]
	if !ok {
		return false
	}
	if l.now().Sub(e.last) > l.window {
		delete(l.entries, email)
		return false
	}
	return e.count >= l.threshold
}

// RecordFailure implements LoginLimiter.
func (l *MemoryLimiter) RecordFailure(_ context.Context, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[email]; ok {
		e.count++
		e.last = l.now()
		return
	}
	l.entries[email] = &failureEntry{count: 1, last: l.now()}
}

// Clear implements LoginLimiter.
func (l *MemoryLimiter) Clear(_ context.Context, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, email)
}

// RedisLimiter shares failure counts across server instances using a
// counter with a TTL. Redis errors fail open: the limiter is a
// brute-force deterrent, not a correctness guarantee, and a degraded
// Redis must not lock everyone out.
type RedisLimiter struct {
	client    *redis.Client
	threshold int
	window    time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, threshold int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, threshold: threshold, window: window}
}

func loginFailKey(email string) string {
	return "login:fail:" + email
}

// IsLimited implements LoginLimiter.
func (l *RedisLimiter) IsLimited(ctx context.Context, email string) bool {
	count, err := l.client.Get(ctx, loginFailKey(email)).Int()
	if err != nil {
		if err != redis.Nil {
			log.Printf("login limiter read failed: %v", err)
		}
		return false
	}
	return count >= l.threshold
}

// RecordFailure implements LoginLimiter.
func (l *RedisLimiter) RecordFailure(ctx context.Context, email string) {
	key := loginFailKey(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("login limiter write failed: %v", err)
	}
}

// Clear implements LoginLimiter.
func (l *RedisLimiter) Clear(ctx context.Context, email string) {
	if err := l.client.Del(ctx, loginFailKey(email)).Err(); err != nil {
		log.Printf("login limiter clear failed: %v", err)
	}
}
