package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	codecInfo = "signed-cookie"
	separator = "."
)

var encoding = base64.RawURLEncoding.Strict()

// Codec signs and verifies opaque values with HMAC-SHA256.
// The wire form is base64url(payload) "." base64url(mac), where the mac is
// computed over the encoded payload. Values are tamper evident, not encrypted.
type Codec struct {
	key []byte
}

// NewCodec creates a codec whose key is derived from secret and salt
func NewCodec(secret, salt string) (*Codec, error) {
	key, err := DeriveKey(secret, salt, codecInfo)
	if err != nil {
		return nil, errors.Wrapf(err, "[token NewCodec]")
	}
	return &Codec{key: key}, nil
}

// Sign returns the signed wire form of payload
func (c *Codec) Sign(payload []byte) string {
	encoded := encoding.EncodeToString(payload)
	return encoded + separator + c.mac(encoded)
}

// SignString is Sign for text payloads
func (c *Codec) SignString(payload string) string {
	return c.Sign([]byte(payload))
}

// Verify checks value's signature and returns its payload as text.
// A bad signature and a payload that is not UTF-8 both return
// ErrVerificationFailure; only the log tells them apart.
func (c *Codec) Verify(value string) (string, error) {
	idx := strings.LastIndex(value, separator)
	if idx < 0 {
		log.Error().Msg("Failed signature verification: no separator in signed value")
		return "", errors.ErrVerificationFailure
	}
	encoded, signature := value[:idx], value[idx+len(separator):]

	if !hmac.Equal([]byte(signature), []byte(c.mac(encoded))) {
		log.Error().Msg("Failed signature verification: signature does not match")
		return "", errors.ErrVerificationFailure
	}

	payload, err := encoding.DecodeString(encoded)
	if err != nil {
		log.Err(err).Msg("Failed signature verification: payload is not base64url")
		return "", errors.ErrVerificationFailure
	}

	if !utf8.Valid(payload) {
		log.Error().Msg("Invalid signed value: payload is not valid utf-8")
		return "", errors.ErrVerificationFailure
	}

	return string(payload), nil
}

func (c *Codec) mac(encoded string) string {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(encoded))
	return encoding.EncodeToString(h.Sum(nil))
}
