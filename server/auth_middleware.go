package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/jrsteele09/sfmc-session-broker/tenants"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAuthorization stores the AuthorizationContext of a gated request
const ContextKeyAuthorization ContextKey = "authorization"

const invalidTenantCookieDescription = "Invalid value provided for the tssd param."

// AuthorizationContext is what a gated handler may use to call upstream.
// Tenant is empty for routes gated on the access token alone.
type AuthorizationContext struct {
	Tenant      tenants.Subdomain
	AccessToken string
}

// AuthorizationFromContext returns the AuthorizationContext set by the auth gate
func AuthorizationFromContext(ctx context.Context) (AuthorizationContext, bool) {
	authz, ok := ctx.Value(ContextKeyAuthorization).(AuthorizationContext)
	return authz, ok
}

func withAuthorization(r *http.Request, authz AuthorizationContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyAuthorization, authz))
}

// RequireSFMCSession gates the SFMC proxy. It needs a well formed tenant
// cookie and a verified access token cookie. The token's expiry at the
// provider is not checked, the upstream call reports that.
func (s *Server) RequireSFMCSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context())

			tenant, err := s.sfmcCookies.Tenant(r)
			if err != nil {
				if errors.Is(err, errors.ErrInvalidTenant) {
					writeJSONError(w, oauth2.ErrorCodeInvalidRequest, invalidTenantCookieDescription, http.StatusBadRequest)
					return
				}
				logger.Error().Msg("tssd cookie was empty")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			accessToken, err := s.sfmcCookies.AccessToken(r)
			if err != nil {
				logger.Err(err).Msg("No usable access token cookie, returning a 401")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next(w, withAuthorization(r, AuthorizationContext{Tenant: tenant, AccessToken: accessToken}))
		}
	}
}

// RequireAccessToken gates on the SFMC access token cookie alone
func (s *Server) RequireAccessToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessToken, err := s.sfmcCookies.AccessToken(r)
			if err != nil {
				zerolog.Ctx(r.Context()).Err(err).Msg("No usable access token cookie, returning a 401")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next(w, withAuthorization(r, AuthorizationContext{AccessToken: accessToken}))
		}
	}
}
