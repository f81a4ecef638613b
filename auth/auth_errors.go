package auth

import (
	"net/http"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
)

// Messages shown on the error view. Deliberately coarse: the log has the detail.
const (
	MsgMissingState     = "Invalid request. Missing state query-param."
	MsgInvalidState     = "Invalid request. Invalid state query-param."
	MsgMissingCode      = "code is required"
	MsgInvalidTenant    = "Invalid value provided in the tssd param."
	MsgTokenFetchFailed = "Failed to fetch access token from SFMC."
	MsgTokenParseFailed = "SFMC returned an unexpected token response."
)

// RequestError is an invalid callback request with a message fit for the end user
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RequestError) Unwrap() []error {
	if e.Err != nil {
		return []error{errors.ErrInvalidRequest, e.Err}
	}
	return []error{errors.ErrInvalidRequest}
}

func invalidRequest(message string, err error) error {
	return &RequestError{Message: message, Err: err}
}

// RefreshFailureStatus maps a failed refresh_token exchange to the status
// returned to the browser: invalid_request is 401, invalid_token is 400 and
// everything else, transport failures included, is 500.
func RefreshFailureStatus(err error) int {
	var upstreamErr *errors.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.Code {
		case oauth2.ErrorCodeInvalidRequest:
			return http.StatusUnauthorized
		case oauth2.ErrorCodeInvalidToken:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text shown on the error view for a failed callback.
// OAuth2 error descriptions from the provider are shown verbatim.
func UserMessage(err error) string {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Message
	}
	var upstreamErr *errors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Description != "" {
		return upstreamErr.Description
	}
	if errors.Is(err, errors.ErrInvalidTokenResponse) {
		return MsgTokenParseFailed
	}
	return MsgTokenFetchFailed
}
