package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *mockSessionRepo) SessionExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockSessionRepo) CheckRateLimit(ctx context.Context, clientKey string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, clientKey, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverSessionRepository(t *testing.T) {
	primary := new(mockSessionRepo)
	fallback := new(mockSessionRepo)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary.On("SessionExists", ctx, "tok-1").Return(true, nil).Once()

		ok, err := repo.SessionExists(ctx, "tok-1")
		assert.NoError(t, err)
		assert.True(t, ok)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		primary.On("SessionExists", ctx, "tok-2").Return(false, errors.New("fail")).Once()
		fallback.On("SessionExists", ctx, "tok-2").Return(true, nil).Once()

		ok, err := repo.SessionExists(ctx, "tok-2")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		primary.On("SessionExists", ctx, "tok-3").Return(true, nil).Once()

		ok, err := repo.SessionExists(ctx, "tok-3")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
	})

	t.Run("RecoveryAttemptFail", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		primary.On("SessionExists", ctx, "tok-4").Return(false, errors.New("still fail")).Once()
		fallback.On("SessionExists", ctx, "tok-4").Return(false, nil).Once()

		_, err := repo.SessionExists(ctx, "tok-4")
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("SaveSessionSuccess", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("SaveSession", ctx, "tok-5", time.Hour).Return(nil).Once()

		err := repo.SaveSession(ctx, "tok-5", time.Hour)
		assert.NoError(t, err)
		primary.AssertExpectations(t)
	})

	t.Run("SaveSessionFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("SaveSession", ctx, "tok-6", time.Hour).Return(errors.New("fail")).Once()
		fallback.On("SaveSession", ctx, "tok-6", time.Hour).Return(nil).Once()

		err := repo.SaveSession(ctx, "tok-6", time.Hour)
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("DeleteSessionSuccess", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("DeleteSession", ctx, "tok-7").Return(nil).Once()

		err := repo.DeleteSession(ctx, "tok-7")
		assert.NoError(t, err)
		primary.AssertExpectations(t)
	})

	t.Run("DeleteSessionFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("DeleteSession", ctx, "tok-8").Return(errors.New("fail")).Once()
		fallback.On("DeleteSession", ctx, "tok-8").Return(nil).Once()

		err := repo.DeleteSession(ctx, "tok-8")
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("CheckRateLimitSuccess", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("CheckRateLimit", ctx, "ip-1", 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, "ip-1", 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
	})

	t.Run("CheckRateLimitFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("CheckRateLimit", ctx, "ip-2", 10, time.Minute).Return(false, errors.New("fail")).Once()
		fallback.On("CheckRateLimit", ctx, "ip-2", 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, "ip-2", 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("AlreadyDownSkipsPrimary", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().UnixNano())
		fallback.On("SessionExists", ctx, "tok-9").Return(true, nil).Once()

		ok, err := repo.SessionExists(ctx, "tok-9")
		assert.NoError(t, err)
		assert.True(t, ok)
		fallback.AssertExpectations(t)
	})
}
