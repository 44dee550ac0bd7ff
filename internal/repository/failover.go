package repository

import (
	"context"
	"sync/atomic"
	"time"

	"tavola/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverSessionRepository prefers the primary (redis) repository and
// silently degrades to the in-memory fallback when it errors, probing the
// primary again after a cooldown.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed probe
}

const primaryRetryAfter = time.Minute

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSessionRepository) primaryUsable() bool {
	if !r.isDown.Load() {
		return true
	}
	if time.Since(time.Unix(0, r.lastCheck.Load())) > primaryRetryAfter {
		r.isDown.Store(false)
		return true
	}
	return false
}

func (r *FailoverSessionRepository) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	if r.primaryUsable() {
		err := r.primary.SaveSession(ctx, token, ttl)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SaveSession(ctx, token, ttl)
}

func (r *FailoverSessionRepository) SessionExists(ctx context.Context, token string) (bool, error) {
	if r.primaryUsable() {
		ok, err := r.primary.SessionExists(ctx, token)
		if err == nil {
			return ok, nil
		}
		r.markDown(err)
	}
	return r.fallback.SessionExists(ctx, token)
}

func (r *FailoverSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if r.primaryUsable() {
		err := r.primary.DeleteSession(ctx, token)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.DeleteSession(ctx, token)
}

func (r *FailoverSessionRepository) CheckRateLimit(ctx context.Context, clientKey string, limit int, window time.Duration) (bool, error) {
	if r.primaryUsable() {
		allowed, err := r.primary.CheckRateLimit(ctx, clientKey, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, clientKey, limit, window)
}
