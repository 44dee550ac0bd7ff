package service

import (
	"context"

	"tavola/internal/domain"
	"tavola/internal/metrics"
	"tavola/internal/models"

	"github.com/rs/zerolog"
)

// ContentService serves the public site content. Reads fall back to the
// built-in static data when the store is empty or unreachable, the same
// degradation the booking side applies.
type ContentService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewContentService(store domain.Store, logger *zerolog.Logger) *ContentService {
	return &ContentService{store: store, logger: logger}
}

func (s *ContentService) Menu(ctx context.Context) ([]models.MenuItem, string) {
	items, err := s.store.ListMenuItems(ctx)
	if err != nil || len(items) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Msg("menu read failed, serving fallback")
		}
		metrics.IncFallback("menu")
		return models.FallbackMenu, SourceFallback
	}
	return items, SourceLive
}

func (s *ContentService) Testimonials(ctx context.Context) ([]models.Testimonial, string) {
	items, err := s.store.ListTestimonials(ctx)
	if err != nil || len(items) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Msg("testimonials read failed, serving fallback")
		}
		metrics.IncFallback("testimonials")
		return models.FallbackTestimonials, SourceFallback
	}
	return items, SourceLive
}
