package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the session broker
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrCookieMissing  = errors.New("cookie missing")
	ErrInvalidTenant  = fmt.Errorf("invalid tenant subdomain: %w", ErrInvalidRequest)

	// Signed value errors. Callers only ever see ErrVerificationFailure,
	// the precise cause is logged where it happens.
	ErrVerificationFailure = errors.New("verification failure")

	// State nonce errors
	ErrStateExpired   = errors.New("state expired")
	ErrStateMalformed = errors.New("state malformed")

	// Upstream provider errors
	ErrUpstream             = errors.New("upstream error")
	ErrInvalidTokenResponse = fmt.Errorf("invalid token response: %w", ErrUpstream)

	// Startup errors
	ErrInternalConfig = errors.New("internal config error")
)

// UpstreamError describes a failed call to one of the providers.
// StatusCode is zero when the request never got a response.
type UpstreamError struct {
	StatusCode  int
	Code        string // OAuth2 "error" field, if the provider sent one
	Description string // OAuth2 "error_description" field, if the provider sent one
	Err         error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream error (status %d)", e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Description != "" {
		msg += " - " + e.Description
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstream, e.Err}
	}
	return []error{ErrUpstream}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single errors import
func New(text string) error {
	return errors.New(text)
}
