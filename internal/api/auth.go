package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = time.Minute
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Password guessing gets the same per-client counter the sessions live in.
	allowed, err := s.sessions.CheckRateLimit(r.Context(), "login:"+clientKey(r), loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		s.logger.Error().Err(err).Msg("login rate limit check failed")
	} else if !allowed {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.Password), []byte(s.cfg.Admin.Password)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	token := s.cfg.Admin.SessionToken
	if token == "" {
		token = uuid.NewString()
	}

	ttl := s.cfg.Admin.SessionTTL
	if err := s.sessions.SaveSession(r.Context(), token, ttl); err != nil {
		s.logger.Error().Err(err).Msg("save session failed")
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if token := bearerToken(r); token != "" {
		if err := s.sessions.DeleteSession(r.Context(), token); err != nil {
			s.logger.Error().Err(err).Msg("delete session failed")
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// requireSession guards the admin surface behind a valid session token.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		ok, err := s.sessions.SessionExists(r.Context(), token)
		if err != nil {
			s.logger.Error().Err(err).Msg("session check failed")
			writeError(w, http.StatusInternalServerError, "session check failed")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
