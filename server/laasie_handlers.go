package server

import (
	"net/http"
)

// LaasieTokenHandler fetches a Laasie token with the service credentials and
// hands it to the browser in a signed cookie
func (s *Server) LaasieTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, err := s.laasie.ExchangeStaticCredentials(r.Context())
		if err != nil {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(internalErrorMessage))
			return
		}

		s.laasieCookies.Write(w, tok)
		w.WriteHeader(http.StatusNoContent)
	}
}
