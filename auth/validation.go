package auth

import (
	"net/url"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/tenants"
	"github.com/rs/zerolog/log"
)

// StateVerifier checks the state nonce echoed back on the callback
type StateVerifier interface {
	Verify(state string) error
}

// CallbackParams are the validated parameters of an authorization callback
type CallbackParams struct {
	Code   string
	Tenant tenants.Subdomain
}

// Validator checks the authorization callback before any token exchange happens
type Validator struct {
	states        StateVerifier
	defaultTenant tenants.Subdomain
}

// NewValidator creates a new Validator instance
func NewValidator(states StateVerifier, defaultTenant tenants.Subdomain) *Validator {
	return &Validator{
		states:        states,
		defaultTenant: defaultTenant,
	}
}

// ValidateCallback checks, in order, the provider error param, the state nonce,
// the code and the optional tssd. Every failure is a *RequestError.
func (v *Validator) ValidateCallback(query url.Values) (CallbackParams, error) {
	if query.Has("error") {
		encoded := query.Encode()
		log.Error().Str("query", encoded).Msg("Authorization server returned an error")
		return CallbackParams{}, invalidRequest(encoded, nil)
	}

	if !query.Has("state") {
		return CallbackParams{}, invalidRequest(MsgMissingState, nil)
	}
	if err := v.states.Verify(query.Get("state")); err != nil {
		// Expired and malformed nonces look the same to the user
		return CallbackParams{}, invalidRequest(MsgInvalidState, err)
	}

	code := query.Get("code")
	if code == "" {
		return CallbackParams{}, invalidRequest(MsgMissingCode, nil)
	}

	tenant := v.defaultTenant
	// tssd is the end-user's subdomain. If present, use it.
	if query.Has("tssd") {
		parsed, err := tenants.Parse(query.Get("tssd"))
		if err != nil {
			log.Error().Msg("Invalid value provided in the tssd param")
			return CallbackParams{}, invalidRequest(MsgInvalidTenant, err)
		}
		tenant = parsed
	}

	return CallbackParams{Code: code, Tenant: tenant}, nil
}

// IsInvalidRequest reports whether err came from request validation
// rather than from the provider
func IsInvalidRequest(err error) bool {
	return errors.Is(err, errors.ErrInvalidRequest)
}
