package server

import (
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealthcheck, ChainMiddleware(s.HealthcheckHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// SFMC OAuth2
	s.RegisterRouteHandler("GET "+RouteSFMCIndex, ChainMiddleware(s.UnsupportedIndexHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSFMCAuthorize, ChainMiddleware(s.SFMCAuthorizeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteSFMCPrefix+s.config.GetSFMCCallbackPath(), ChainMiddleware(s.SFMCCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteSFMCRefreshToken, ChainMiddleware(s.SFMCRefreshTokenHandler(), s.APIMiddleware()...))

	// Laasie auth
	s.RegisterRouteHandler("GET "+RouteLaasieIndex, ChainMiddleware(s.UnsupportedIndexHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLaasieToken, ChainMiddleware(s.LaasieTokenHandler(), s.APIMiddleware()...))

	// SFMC REST proxy, only the endpoints the front end uses
	sfmcProxy := ChainMiddleware(s.SFMCRestProxyHandler(), s.APIMiddleware(s.RequireSFMCSession())...)
	s.RegisterRouteHandler("GET "+RouteAPISFMCAssets, sfmcProxy)
	s.RegisterRouteHandler("POST "+RouteAPISFMCAssets, sfmcProxy)
	s.RegisterRouteHandler("POST "+RouteAPISFMCAssetsQuery, sfmcProxy)
	s.RegisterRouteHandler("PATCH "+RouteAPISFMCAsset, sfmcProxy)
	s.RegisterRouteHandler("GET "+RouteAPISFMCAssetThumbnail, sfmcProxy)
	s.RegisterRouteHandler("GET "+RouteAPISFMCCategories, sfmcProxy)
	s.RegisterRouteHandler("POST "+RouteAPISFMCCategories, sfmcProxy)
	s.RegisterRouteHandler("GET "+RouteAPISFMCUserInfo, ChainMiddleware(s.SFMCUserInfoProxyHandler(), s.APIMiddleware(s.RequireSFMCSession())...))

	// Laasie proxy
	s.RegisterRouteHandler("POST "+RouteAPILaasieSFMC, ChainMiddleware(s.LaasieProxyHandler(), s.APIMiddleware(s.RequireAccessToken())...))
}

// SFMCRestProxyHandler forwards to the tenant's REST host
func (s *Server) SFMCRestProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authz, ok := AuthorizationFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "Missing authorization", http.StatusUnauthorized)
			return
		}
		upstream := s.hosts.RestBaseURL(authz.Tenant) + strings.TrimPrefix(r.URL.Path, RouteAPISFMC)
		s.forwarder.Forward(w, r, upstream, authz.AccessToken)
	}
}

// SFMCUserInfoProxyHandler forwards to the tenant's userinfo endpoint on the auth host
func (s *Server) SFMCUserInfoProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authz, ok := AuthorizationFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "Missing authorization", http.StatusUnauthorized)
			return
		}
		s.forwarder.Forward(w, r, s.hosts.UserInfoURL(authz.Tenant), authz.AccessToken)
	}
}

// LaasieProxyHandler forwards to the Laasie API with the SFMC access token as bearer
func (s *Server) LaasieProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authz, ok := AuthorizationFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "Missing authorization", http.StatusUnauthorized)
			return
		}
		upstream := s.config.GetLaasieBaseURL() + strings.TrimPrefix(r.URL.Path, RouteAPILaasie)
		s.forwarder.Forward(w, r, upstream, authz.AccessToken)
	}
}
