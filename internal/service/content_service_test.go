package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"tavola/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newContentService(store *mockStore) *ContentService {
	logger := zerolog.New(io.Discard)
	return NewContentService(store, &logger)
}

func TestContentServiceMenu(t *testing.T) {
	ctx := context.Background()

	t.Run("Live", func(t *testing.T) {
		store := new(mockStore)
		svc := newContentService(store)

		live := []models.MenuItem{{ID: "1", Name: "Cacio e Pepe", Category: "Pasta"}}
		store.On("ListMenuItems", ctx).Return(live, nil).Once()

		items, source := svc.Menu(ctx)
		assert.Equal(t, SourceLive, source)
		assert.Len(t, items, 1)
	})

	t.Run("FallbackOnError", func(t *testing.T) {
		store := new(mockStore)
		svc := newContentService(store)

		store.On("ListMenuItems", ctx).Return(nil, errors.New("store down")).Once()

		items, source := svc.Menu(ctx)
		assert.Equal(t, SourceFallback, source)
		assert.Len(t, items, 20)
	})

	t.Run("FallbackOnEmpty", func(t *testing.T) {
		store := new(mockStore)
		svc := newContentService(store)

		store.On("ListMenuItems", ctx).Return([]models.MenuItem{}, nil).Once()

		_, source := svc.Menu(ctx)
		assert.Equal(t, SourceFallback, source)
	})
}

func TestContentServiceTestimonials(t *testing.T) {
	ctx := context.Background()

	t.Run("Live", func(t *testing.T) {
		store := new(mockStore)
		svc := newContentService(store)

		live := []models.Testimonial{{ID: "1", Name: "M. Bianchi", Rating: 5}}
		store.On("ListTestimonials", ctx).Return(live, nil).Once()

		items, source := svc.Testimonials(ctx)
		assert.Equal(t, SourceLive, source)
		assert.Len(t, items, 1)
	})

	t.Run("FallbackOnError", func(t *testing.T) {
		store := new(mockStore)
		svc := newContentService(store)

		store.On("ListTestimonials", ctx).Return(nil, errors.New("store down")).Once()

		items, source := svc.Testimonials(ctx)
		assert.Equal(t, SourceFallback, source)
		assert.Len(t, items, 5)
	})
}
