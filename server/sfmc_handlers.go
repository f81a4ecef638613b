package server

import (
	"net/http"

	"github.com/jrsteele09/sfmc-session-broker/auth"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/rs/zerolog"
)

// SFMCAuthorizeHandler redirects the browser to the default tenant's
// authorization endpoint with a fresh state nonce
func (s *Server) SFMCAuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.states.Issue()
		if err != nil {
			zerolog.Ctx(r.Context()).Err(err).Msg("Cannot build authorization URL")
			s.renderError(w, r, http.StatusInternalServerError, internalErrorMessage)
			return
		}
		http.Redirect(w, r, s.sfmc.AuthorizeURL(state), http.StatusFound)
	}
}

// SFMCCallbackHandler completes the authorization code grant and starts the
// session. Failures render the error view and set no cookies.
func (s *Server) SFMCCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		params, err := s.callback.ValidateCallback(r.URL.Query())
		if err != nil {
			logger.Err(err).Msg("Invalid authorization callback")
			s.renderError(w, r, http.StatusBadRequest, auth.UserMessage(err))
			return
		}

		tokenSet, err := s.sfmc.ExchangeAuthorizationCode(r.Context(), params.Tenant, params.Code)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errors.ErrUpstream) {
				status = http.StatusBadGateway
			}
			s.renderError(w, r, status, auth.UserMessage(err))
			return
		}

		s.sfmcCookies.Write(w, tokenSet, params.Tenant)
		logger.Info().Str("tenant", params.Tenant.String()).Msg("SFMC session started")
		http.Redirect(w, r, RouteHome, http.StatusFound)
	}
}

// SFMCRefreshTokenHandler is called by the front end to renew the session
// before the access token cookie expires
func (s *Server) SFMCRefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		tenant, err := s.sfmcCookies.Tenant(r)
		if err != nil {
			if errors.Is(err, errors.ErrInvalidTenant) {
				writeJSONError(w, oauth2.ErrorCodeInvalidRequest, invalidTenantCookieDescription, http.StatusBadRequest)
				return
			}
			logger.Error().Msg("SFMC tenant sub-domain cookie was not found")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		refreshToken, err := s.sfmcCookies.RefreshToken(r)
		if err != nil {
			logger.Err(err).Msg("No usable refresh token cookie, returning a 401")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		tokenSet, err := s.sfmc.ExchangeRefreshToken(r.Context(), tenant, refreshToken)
		if err != nil {
			w.WriteHeader(auth.RefreshFailureStatus(err))
			return
		}

		s.sfmcCookies.Write(w, tokenSet, tenant)
		w.WriteHeader(http.StatusNoContent)
	}
}
