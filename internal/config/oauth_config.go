package config

import "time"

type OAuthConfig interface {
	GetStateTimeout() time.Duration
	GetTenantCookieExpiry() time.Duration
	GetAccessTokenCookieExpiry() time.Duration
	GetRefreshTokenCookieExpiry() time.Duration
	GetLaasieAccessTokenCookieExpiry() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetStateTimeout() time.Duration {
	return 10 * time.Minute
}

func (OAuth) GetTenantCookieExpiry() time.Duration {
	return 24 * time.Hour
}

// SFMC access tokens live for 20 minutes, the cookie never outlives them
func (OAuth) GetAccessTokenCookieExpiry() time.Duration {
	return 20 * time.Minute
}

func (OAuth) GetRefreshTokenCookieExpiry() time.Duration {
	return 14 * 24 * time.Hour // 14 days
}

func (OAuth) GetLaasieAccessTokenCookieExpiry() time.Duration {
	return 60 * time.Minute
}
