package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	contentTypeJSON      = "application/json"
	internalErrorMessage = "An internal error occurred"
)

// HealthcheckHandler answers the load balancer
func (s *Server) HealthcheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Healthy!"))
	}
}

// LogoutHandler expires every cookie the broker sets. There is nothing to
// revoke server side.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sfmcCookies.Clear(w)
		s.laasieCookies.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// UnsupportedIndexHandler serves the bare prefix routes
func (s *Server) UnsupportedIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Error().Msg("index route is not supported. Returning a 404...")
		w.WriteHeader(http.StatusNotFound)
	}
}

// writeJSONError writes an OAuth2 style error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
