package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tavola/internal/dashboard"
	"tavola/internal/models"
	"tavola/internal/service"
)

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r)
	case http.MethodPost:
		s.createBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	status := r.URL.Query().Get("status")
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	var bookings []models.Booking
	if date != "" {
		bookings = s.state.ForDate(query, status, date)
	} else {
		bookings = s.state.Filter(query, status)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings":    bookings,
		"total":       len(bookings),
		"data_source": s.bookings.DataSource(),
	})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.bookings.CreateManualBooking(r.Context(), &booking); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create booking")
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// handleBookingByID routes /api/v1/admin/bookings/{id} and
// /api/v1/admin/bookings/{id}/status.
func (s *Server) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/admin/bookings/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/status"); ok {
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.updateStatus(w, r, id)
		return
	}

	if strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getBooking(w, rest)
	case http.MethodPut:
		s.updateBooking(w, r, rest)
	case http.MethodDelete:
		s.deleteBooking(w, r, rest)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) getBooking(w http.ResponseWriter, id string) {
	booking, ok := s.bookings.GetBooking(id)
	if !ok {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request, id string) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	booking.ID = id

	if err := s.bookings.UpdateBooking(r.Context(), &booking); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			writeError(w, http.StatusNotFound, "booking not found")
		default:
			writeError(w, http.StatusInternalServerError, "could not update booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			writeError(w, http.StatusNotFound, "booking not found")
		default:
			writeError(w, http.StatusInternalServerError, "could not update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.bookings.DeleteBooking(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete booking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	query := r.URL.Query().Get("query")
	status := r.URL.Query().Get("status")

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	year, month := now.Year(), now.Month()
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":         s.state.Stats(now),
		"day_summaries": s.state.DaySummaries(),
		"calendar": map[string]any{
			"year":          year,
			"month":         int(month),
			"days_in_month": dashboard.DaysInMonth(year, month),
			"first_weekday": dashboard.FirstWeekday(year, month),
			"dates":         dashboard.MonthDates(year, month),
		},
		"selected_date": date,
		"bookings":      s.state.ForDate(query, status, date),
		"timeline":      s.state.Timeline(query, status, date),
		"data_source":   s.bookings.DataSource(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
	}
	if end < start {
		writeError(w, http.StatusBadRequest, "end must not precede start")
		return
	}

	path, err := s.exporter.BookingsToExcel(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
