package sessions

import (
	"net/http"
	"time"

	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/jrsteele09/sfmc-session-broker/tenants"
	"github.com/jrsteele09/sfmc-session-broker/token"
	"github.com/rs/zerolog/log"
)

const (
	TenantCookieName            = "sfmc_tssd"
	AccessTokenCookieName       = "sfmc_access_token"
	RefreshTokenCookieName      = "sfmc_refresh_token"
	LaasieAccessTokenCookieName = "external_access_token"
)

// CookieConfig is the part of the configuration the cookie policies need
type CookieConfig interface {
	config.OAuthConfig
	config.SecurityConfig
}

// SFMCCookies is the cookie policy for an SFMC session: the tenant in
// plaintext plus the signed access and refresh tokens. All three are HttpOnly.
type SFMCCookies struct {
	codec         *token.Codec
	secure        bool
	tenantExpiry  time.Duration
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewSFMCCookies(codec *token.Codec, cfg CookieConfig) *SFMCCookies {
	return &SFMCCookies{
		codec:         codec,
		secure:        cfg.GetSecureCookies(),
		tenantExpiry:  cfg.GetTenantCookieExpiry(),
		accessExpiry:  cfg.GetAccessTokenCookieExpiry(),
		refreshExpiry: cfg.GetRefreshTokenCookieExpiry(),
	}
}

// Write sets the tenant, access token and refresh token cookies
func (c *SFMCCookies) Write(w http.ResponseWriter, tokenSet *oauth2.TokenSet, tenant tenants.Subdomain) {
	http.SetCookie(w, newCookie(TenantCookieName, tenant.String(), c.tenantExpiry, true, c.secure))
	http.SetCookie(w, newCookie(AccessTokenCookieName, c.codec.SignString(tokenSet.AccessToken), c.accessExpiry, true, c.secure))
	http.SetCookie(w, newCookie(RefreshTokenCookieName, c.codec.SignString(tokenSet.RefreshToken), c.refreshExpiry, true, c.secure))
}

// Tenant reads the tenant cookie and checks its format.
// Returns ErrCookieMissing or ErrInvalidTenant.
func (c *SFMCCookies) Tenant(r *http.Request) (tenants.Subdomain, error) {
	cookie, err := r.Cookie(TenantCookieName)
	if err != nil {
		return "", errors.ErrCookieMissing
	}
	tenant, err := tenants.Parse(cookie.Value)
	if err != nil {
		log.Error().Msg("Invalid value provided in the tssd cookie")
		return "", err
	}
	return tenant, nil
}

// AccessToken returns the verified access token.
// Returns ErrCookieMissing or ErrVerificationFailure.
func (c *SFMCCookies) AccessToken(r *http.Request) (string, error) {
	return readSigned(r, c.codec, AccessTokenCookieName)
}

// RefreshToken returns the verified refresh token.
// Returns ErrCookieMissing or ErrVerificationFailure.
func (c *SFMCCookies) RefreshToken(r *http.Request) (string, error) {
	return readSigned(r, c.codec, RefreshTokenCookieName)
}

// Clear expires all three SFMC cookies
func (c *SFMCCookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{TenantCookieName, AccessTokenCookieName, RefreshTokenCookieName} {
		http.SetCookie(w, expiredCookie(name, true, c.secure))
	}
}

// LaasieCookies is the cookie policy for the Laasie token. The cookie is
// readable from script, the front end sends it on to Laasie itself.
type LaasieCookies struct {
	codec  *token.Codec
	secure bool
	expiry time.Duration
}

func NewLaasieCookies(codec *token.Codec, cfg CookieConfig) *LaasieCookies {
	return &LaasieCookies{
		codec:  codec,
		secure: cfg.GetSecureCookies(),
		expiry: cfg.GetLaasieAccessTokenCookieExpiry(),
	}
}

// Write sets the signed Laasie access token cookie
func (c *LaasieCookies) Write(w http.ResponseWriter, tok *oauth2.SimpleToken) {
	http.SetCookie(w, newCookie(LaasieAccessTokenCookieName, c.codec.SignString(tok.AccessToken), c.expiry, false, c.secure))
}

// AccessToken returns the verified Laasie token.
// Returns ErrCookieMissing or ErrVerificationFailure.
func (c *LaasieCookies) AccessToken(r *http.Request) (string, error) {
	return readSigned(r, c.codec, LaasieAccessTokenCookieName)
}

func (c *LaasieCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, expiredCookie(LaasieAccessTokenCookieName, false, c.secure))
}

func readSigned(r *http.Request, codec *token.Codec, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", errors.ErrCookieMissing
	}
	value, err := codec.Verify(cookie.Value)
	if err != nil {
		log.Error().Str("cookie", name).Msg("Failed to verify signed cookie")
		return "", err
	}
	return value, nil
}

func newCookie(name, value string, expiry time.Duration, httpOnly, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(expiry.Seconds()),
		Expires:  time.Now().Add(expiry),
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	}
}

func expiredCookie(name string, httpOnly, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	}
}
