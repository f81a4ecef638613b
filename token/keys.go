package token

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeyLength = 32

// DeriveKey expands the configured secret into a purpose-bound key.
// Different salt/info pairs give independent keys from the one secret,
// so the cookie codec and the state signer never share key material.
func DeriveKey(secret, salt, info string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("[token DeriveKey] secret is required")
	}
	key := make([]byte, derivedKeyLength)
	r := hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("[token DeriveKey] failed to derive key: %w", err)
	}
	return key, nil
}
