package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tavola/internal/config"
	"tavola/internal/dashboard"
	"tavola/internal/domain"
	"tavola/internal/export"
	"tavola/internal/metrics"
	"tavola/internal/service"

	"github.com/rs/zerolog"
)

// Server is the HTTP surface: the public site API and the admin panel API.
type Server struct {
	cfg      *config.Config
	bookings *service.BookingService
	content  *service.ContentService
	state    *dashboard.State
	sessions domain.SessionRepository
	exporter *export.Exporter
	limiter  *rateLimiter
	logger   *zerolog.Logger
	server   *http.Server
}

func NewServer(
	cfg *config.Config,
	bookings *service.BookingService,
	content *service.ContentService,
	state *dashboard.State,
	sessions domain.SessionRepository,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		bookings: bookings,
		content:  content,
		state:    state,
		sessions: sessions,
		exporter: exporter,
		limiter:  newRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/menu", s.handleMenu)
	mux.HandleFunc("/api/v1/testimonials", s.handleTestimonials)
	mux.HandleFunc("/api/v1/restaurant", s.handleRestaurant)
	mux.HandleFunc("/api/v1/slots", s.handleSlots)
	mux.HandleFunc("/api/v1/reservations", s.handleReservations)

	mux.HandleFunc("/api/v1/admin/login", s.handleLogin)
	mux.HandleFunc("/api/v1/admin/logout", s.requireSession(s.handleLogout))
	mux.HandleFunc("/api/v1/admin/bookings", s.requireSession(s.handleBookings))
	mux.HandleFunc("/api/v1/admin/bookings/", s.requireSession(s.handleBookingByID))
	mux.HandleFunc("/api/v1/admin/dashboard", s.requireSession(s.handleDashboard))
	mux.HandleFunc("/api/v1/admin/export", s.requireSession(s.handleExport))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
