package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	stateSalt = "state-nonce"
	stateInfo = "oauth2-state"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// StateSigner issues and verifies the OAuth2 state nonce: an HS256 JWT whose
// only claim is its expiry. Nothing is stored server side, so a nonce can be
// replayed until it expires.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewStateSigner creates a state signer keyed independently from the cookie codec
func NewStateSigner(secret string, ttl time.Duration) (*StateSigner, error) {
	key, err := DeriveKey(secret, stateSalt, stateInfo)
	if err != nil {
		return nil, errors.Wrapf(err, "[token NewStateSigner]")
	}
	return &StateSigner{secret: key, ttl: ttl}, nil
}

// Issue returns a nonce that expires ttl from now
func (s *StateSigner) Issue() (string, error) {
	return s.IssueWithExpiry(NowTimeFunc().Add(s.ttl))
}

// IssueWithExpiry returns a nonce that expires at exp
func (s *StateSigner) IssueWithExpiry(exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state with HMAC: %w", err)
	}
	return signed, nil
}

// Verify returns nil for a valid, unexpired nonce, ErrStateExpired for a
// genuine but expired one and ErrStateMalformed for anything else.
func (s *StateSigner) Verify(state string) error {
	if state == "" {
		log.Error().Msg("State is empty")
		return errors.ErrStateMalformed
	}

	_, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, s.getVerificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		log.Error().Msg("State JWT expired")
		return errors.ErrStateExpired
	default:
		log.Err(err).Msg("Decode error encountered for state JWT")
		return errors.ErrStateMalformed
	}
}

func (s *StateSigner) getVerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}
