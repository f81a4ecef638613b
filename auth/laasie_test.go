package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/sfmc-session-broker/auth"
	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/stretchr/testify/require"
)

type laasieConfig struct {
	baseURL string
}

func (c laasieConfig) GetLaasieBaseURL() string  { return c.baseURL }
func (c laasieConfig) GetLaasieUsername() string { return "laasie-user" }
func (c laasieConfig) GetLaasiePassword() string { return "laasie-pass" }

var _ config.LaasieConfig = laasieConfig{}

func laasieServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, map[string]string{"api_id": "laasie-user", "api_key": "laasie-pass"}, creds)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLaasieClient_ExchangeStaticCredentials(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := laasieServer(t, http.StatusOK, `{"token":"laasie-token"}`)
		client := auth.NewLaasieClient(laasieConfig{baseURL: srv.URL}, srv.Client())

		tok, err := client.ExchangeStaticCredentials(context.Background())
		require.NoError(t, err)
		require.Equal(t, "laasie-token", tok.AccessToken)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := laasieServer(t, http.StatusForbidden, `{"token":"ignored"}`)
		client := auth.NewLaasieClient(laasieConfig{baseURL: srv.URL}, srv.Client())

		tok, err := client.ExchangeStaticCredentials(context.Background())
		require.Nil(t, tok)
		require.ErrorIs(t, err, errors.ErrInvalidTokenResponse)
	})

	t.Run("missing token field", func(t *testing.T) {
		srv := laasieServer(t, http.StatusOK, `{"jwt":"wrong-field"}`)
		client := auth.NewLaasieClient(laasieConfig{baseURL: srv.URL}, srv.Client())

		tok, err := client.ExchangeStaticCredentials(context.Background())
		require.Nil(t, tok)
		require.ErrorIs(t, err, errors.ErrInvalidTokenResponse)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		baseURL := srv.URL
		srv.Close()
		client := auth.NewLaasieClient(laasieConfig{baseURL: baseURL}, nil)

		_, err := client.ExchangeStaticCredentials(context.Background())
		require.ErrorIs(t, err, errors.ErrUpstream)
	})
}
