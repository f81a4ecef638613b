package server

import "github.com/jrsteele09/sfmc-session-broker/auth"

// Route path constants
const (
	// SFMC OAuth2 routes. The callback path is configurable and is appended to RouteSFMCPrefix.
	RouteSFMCPrefix       = auth.SFMCPathPrefix
	RouteSFMCIndex        = RouteSFMCPrefix + "/{$}"
	RouteSFMCAuthorize    = RouteSFMCPrefix + "/authorize"
	RouteSFMCRefreshToken = RouteSFMCPrefix + "/refresh_token"

	// Laasie auth routes
	RouteLaasieIndex = "/auth/laasie/{$}"
	RouteLaasieToken = "/auth/laasie/token"

	RouteLogout      = "/logout"
	RouteHealthcheck = "/healthcheck"
	RouteHome        = "/"

	// Proxy prefixes, stripped before the path is appended to the upstream base
	RouteAPISFMC   = "/api/sfmc"
	RouteAPILaasie = "/api/laasie"

	// SFMC REST proxy routes
	RouteAPISFMCAssets         = RouteAPISFMC + "/asset/v1/content/assets"
	RouteAPISFMCAssetsQuery    = RouteAPISFMC + "/asset/v1/content/assets/query"
	RouteAPISFMCAsset          = RouteAPISFMC + "/asset/v1/content/assets/{id}"
	RouteAPISFMCAssetThumbnail = RouteAPISFMC + "/asset/v1/assets/{id}/thumbnail"
	RouteAPISFMCCategories     = RouteAPISFMC + "/asset/v1/content/categories"
	RouteAPISFMCUserInfo       = RouteAPISFMC + "/userinfo"

	// Laasie proxy routes
	RouteAPILaasieSFMC = RouteAPILaasie + "/sfmc"
)
