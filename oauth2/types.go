package oauth2

// ResponseType represents the OAuth 2.0 response type.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Example: /v2/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: client_id, client_secret, code, redirect_uri
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenCodeGrant exchanges a refresh token for new tokens.
	// Token request includes: client_id, client_secret, refresh_token
	// SFMC rotates the refresh token on every use.
	RefreshTokenCodeGrant GrantType = "refresh_token"
)

// Provider error codes with a dedicated meaning on refresh
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidToken   = "invalid_token"
)

// AuthorizationCodeRequest is the JSON body of an authorization_code grant
type AuthorizationCodeRequest struct {
	GrantType    GrantType `json:"grant_type"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Code         string    `json:"code"`
	RedirectURI  string    `json:"redirect_uri"`
}

// RefreshTokenRequest is the JSON body of a refresh_token grant
type RefreshTokenRequest struct {
	GrantType    GrantType `json:"grant_type"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	RefreshToken string    `json:"refresh_token"`
}

// StaticCredentialsRequest is the JSON body posted to the Laasie auth endpoint
type StaticCredentialsRequest struct {
	APIID  string `json:"api_id"`
	APIKey string `json:"api_key"`
}

// ErrorResponse is the standard OAuth2 error body (RFC 6749 section 5.2)
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
