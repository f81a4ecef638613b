package auth

import (
	"context"
	"net/http"

	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/jrsteele09/sfmc-session-broker/tenants"
	"github.com/rs/zerolog"
	xoauth2 "golang.org/x/oauth2"
)

// SFMCPathPrefix is where the SFMC OAuth2 routes are mounted
const SFMCPathPrefix = "/oauth2/sfmc"

// SFMCClient performs the OAuth2 grant exchanges against a tenant's
// token endpoint. Each call is a single request: failures are returned, never retried.
type SFMCClient struct {
	httpClient    *http.Client
	hosts         tenants.Hosts
	clientID      string
	clientSecret  string
	defaultTenant tenants.Subdomain
	redirectURI   string
}

// NewSFMCClient creates a client from the validated configuration
func NewSFMCClient(cfg config.Config, httpClient *http.Client) *SFMCClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SFMCClient{
		httpClient:    httpClient,
		hosts:         cfg.GetSFMCHosts(),
		clientID:      cfg.GetSFMCClientID(),
		clientSecret:  cfg.GetSFMCClientSecret(),
		defaultTenant: cfg.GetSFMCDefaultTenant(),
		redirectURI:   cfg.GetSelfDomain() + SFMCPathPrefix + cfg.GetSFMCCallbackPath(),
	}
}

// DefaultTenant is the tenant used when the callback carries no tssd
func (c *SFMCClient) DefaultTenant() tenants.Subdomain {
	return c.defaultTenant
}

// RedirectURI is the callback URL registered with SFMC
func (c *SFMCClient) RedirectURI() string {
	return c.redirectURI
}

// AuthorizeURL returns the default tenant's authorization endpoint with the
// state nonce embedded
func (c *SFMCClient) AuthorizeURL(state string) string {
	oauthConfig := &xoauth2.Config{
		ClientID:    c.clientID,
		RedirectURL: c.redirectURI,
		Endpoint: xoauth2.Endpoint{
			AuthURL:  c.hosts.AuthorizeURL(c.defaultTenant),
			TokenURL: c.hosts.TokenURL(c.defaultTenant),
		},
	}
	return oauthConfig.AuthCodeURL(state)
}

// ExchangeAuthorizationCode trades an authorization code for a token set
func (c *SFMCClient) ExchangeAuthorizationCode(ctx context.Context, tenant tenants.Subdomain, code string) (*oauth2.TokenSet, error) {
	return c.exchange(ctx, tenant, oauth2.AuthorizationCodeRequest{
		GrantType:    oauth2.AuthorizationCodeGrant,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
		RedirectURI:  c.redirectURI,
	})
}

// ExchangeRefreshToken trades a refresh token for a new token set.
// Use RefreshFailureStatus to turn the error into a response status.
func (c *SFMCClient) ExchangeRefreshToken(ctx context.Context, tenant tenants.Subdomain, refreshToken string) (*oauth2.TokenSet, error) {
	return c.exchange(ctx, tenant, oauth2.RefreshTokenRequest{
		GrantType:    oauth2.RefreshTokenCodeGrant,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RefreshToken: refreshToken,
	})
}

func (c *SFMCClient) exchange(ctx context.Context, tenant tenants.Subdomain, body any) (*oauth2.TokenSet, error) {
	logger := zerolog.Ctx(ctx).With().Str("tenant", tenant.String()).Logger()

	status, respBody, err := postJSON(ctx, c.httpClient, c.hosts.TokenURL(tenant), body)
	if err != nil {
		logger.Err(err).Msg("Failed to reach the SFMC token endpoint")
		return nil, &errors.UpstreamError{StatusCode: status, Err: err}
	}

	if status != http.StatusOK {
		errResp, ok := oauth2.ParseErrorResponse(respBody)
		if !ok {
			logger.Error().Int("status", status).Str("body", string(respBody)).Msg("Failed to fetch token from SFMC, unparseable error body")
			return nil, &errors.UpstreamError{StatusCode: status, Err: errors.New("unparseable error response")}
		}
		logger.Error().Int("status", status).Str("error", errResp.Error).Str("error_description", errResp.ErrorDescription).Msg("Failed to fetch token from SFMC")
		return nil, &errors.UpstreamError{
			StatusCode:  status,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	tokenSet, err := oauth2.ParseTokenSet(respBody)
	if err != nil {
		logger.Err(err).Msg("Error parsing JSON response from token endpoint")
		return nil, err
	}
	return tokenSet, nil
}
