package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter - rate limiter на внешний провайдер (sliding window).
// Ключ - имя провайдера ("flux", "openrouter" и т.д.).
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	pollStep time.Duration
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 30
	}

	return &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   time.Minute,
		pollStep: 100 * time.Millisecond,
	}
}

func (l *Limiter) Allow(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// оставляем только свежие запросы
	old := l.requests[provider]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.requests[provider] = fresh
		return false
	}

	l.requests[provider] = append(fresh, now)
	return true
}

// Wait блокирует до освобождения слота или отмены контекста
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	for {
		if l.Allow(provider) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.pollStep):
		}
	}
}

func (l *Limiter) Remaining(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	used := 0
	for _, t := range l.requests[provider] {
		if t.After(cutoff) {
			used++
		}
	}

	if used >= l.limit {
		return 0
	}
	return l.limit - used
}
