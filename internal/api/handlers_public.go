package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"tavola/internal/models"
	"tavola/internal/service"
)

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items, source := s.content.Menu(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"data_source": source,
	})
}

func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items, source := s.content.Testimonials(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"testimonials": items,
		"data_source":  source,
	})
}

func (s *Server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.cfg.Restaurant)
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slots":       models.TimeSlots,
		"admin_slots": models.AdminTimeSlots,
		"occasions":   models.Occasions,
	})
}

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !s.limiter.allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req service.ReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, ref, err := s.bookings.CreateGuestBooking(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create reservation")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":          booking,
		"confirmation_ref": ref,
	})
}
