package oauth2

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
)

// TokenSet is the SFMC token endpoint response for both the
// authorization_code and refresh_token grants.
// https://developer.salesforce.com/docs/marketing/marketing-cloud/guide/access-token-app.html
type TokenSet struct {
	// AccessToken is the bearer credential sent to the tenant's REST API.
	// Lifespan: 20 minutes
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime in seconds of the access token, as advertised by SFMC.
	// The access token cookie uses its own fixed lifetime.
	ExpiresIn int `json:"expires_in"`

	// RefreshToken mints a new access token without prompting the user.
	// Single use: SFMC returns a new one with every refresh.
	RefreshToken string `json:"refresh_token"`

	// RestInstanceURL is the tenant's REST base URL.
	// Example: "https://mcmb4wk3d.rest.marketingcloudapis.com/"
	RestInstanceURL string `json:"rest_instance_url"`

	// SoapInstanceURL is the tenant's SOAP base URL.
	SoapInstanceURL string `json:"soap_instance_url"`

	// Scope is the space-separated list of granted permissions.
	Scope string `json:"scope"`
}

// ParseTokenSet strictly decodes a token endpoint body.
// Anything that is not JSON or lacks an access token is ErrInvalidTokenResponse.
func ParseTokenSet(body []byte) (*TokenSet, error) {
	var ts TokenSet
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
	}
	if ts.AccessToken == "" {
		return nil, fmt.Errorf("%w: body is not an access token response", errors.ErrInvalidTokenResponse)
	}
	if ts.RefreshToken == "" {
		return nil, fmt.Errorf("%w: access token response has no refresh token", errors.ErrInvalidTokenResponse)
	}
	return &ts, nil
}

// SimpleToken is the Laasie auth endpoint response
type SimpleToken struct {
	AccessToken string `json:"token"`
}

// ParseSimpleToken strictly decodes a Laasie auth body
func ParseSimpleToken(body []byte) (*SimpleToken, error) {
	var st SimpleToken
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
	}
	if st.AccessToken == "" {
		return nil, fmt.Errorf("%w: body is not an access token response", errors.ErrInvalidTokenResponse)
	}
	return &st, nil
}

// ParseErrorResponse decodes an OAuth2 error body. ok is false when the
// body is not JSON or carries no error code.
func ParseErrorResponse(body []byte) (resp ErrorResponse, ok bool) {
	if err := json.Unmarshal(body, &resp); err != nil {
		return ErrorResponse{}, false
	}
	return resp, resp.Error != "" || resp.ErrorDescription != ""
}
