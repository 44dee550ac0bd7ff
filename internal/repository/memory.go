package repository

import (
	"context"
	"sync"
	"time"
)

// MemorySessionRepository is the in-process fallback when redis is down.
// Sessions held here are lost on restart, which matches the product's
// no-session-persistence posture.
type MemorySessionRepository struct {
	sessions   sync.Map // token -> expiresAt time.Time
	rateLimits sync.Map // clientKey -> *rateLimitEntry
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	r.sessions.Store(token, time.Now().Add(ttl))
	return nil
}

func (r *MemorySessionRepository) SessionExists(ctx context.Context, token string) (bool, error) {
	val, ok := r.sessions.Load(token)
	if !ok {
		return false, nil
	}
	if time.Now().After(val.(time.Time)) {
		r.sessions.Delete(token)
		return false, nil
	}
	return true, nil
}

func (r *MemorySessionRepository) DeleteSession(ctx context.Context, token string) error {
	r.sessions.Delete(token)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, clientKey string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(clientKey)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(clientKey, entry)
	return entry.count <= limit, nil
}
