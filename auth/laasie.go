package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/rs/zerolog"
)

// LaasieClient exchanges the configured static credentials for a Laasie API token
type LaasieClient struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

func NewLaasieClient(cfg config.LaasieConfig, httpClient *http.Client) *LaasieClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LaasieClient{
		httpClient: httpClient,
		baseURL:    cfg.GetLaasieBaseURL(),
		username:   cfg.GetLaasieUsername(),
		password:   cfg.GetLaasiePassword(),
	}
}

// ExchangeStaticCredentials fetches a token. Any non-200 status or a body
// without a token is ErrInvalidTokenResponse.
func (c *LaasieClient) ExchangeStaticCredentials(ctx context.Context) (*oauth2.SimpleToken, error) {
	logger := zerolog.Ctx(ctx)

	status, respBody, err := postJSON(ctx, c.httpClient, c.baseURL+"/auth", oauth2.StaticCredentialsRequest{
		APIID:  c.username,
		APIKey: c.password,
	})
	if err != nil {
		logger.Err(err).Msg("Failed to reach the Laasie auth endpoint")
		return nil, &errors.UpstreamError{StatusCode: status, Err: err}
	}

	if status != http.StatusOK {
		logger.Error().Int("status", status).Str("body", string(respBody)).Msg("Failed to fetch access token from Laasie")
		return nil, &errors.UpstreamError{
			StatusCode: status,
			Err:        fmt.Errorf("%w: unexpected status %d", errors.ErrInvalidTokenResponse, status),
		}
	}

	token, err := oauth2.ParseSimpleToken(respBody)
	if err != nil {
		logger.Err(err).Str("body", string(respBody)).Msg("Error parsing JSON response from token endpoint")
		return nil, err
	}
	return token, nil
}
