package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/sfmc-session-broker/sessions"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckHandler(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Healthy!", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestSecurityHeaders(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/oauth2/sfmc/authorize", nil))
	csp := rec.Header().Get("Content-Security-Policy")
	require.Contains(t, csp, "default-src 'self'")
	require.Contains(t, csp, "frame-ancestors https://*.exacttarget.com https://*.marketingcloudapps.com")
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestUnsupportedIndexHandler(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/oauth2/sfmc/", "/auth/laasie/"} {
		rec := h.do(httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestLaasieTokenHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(httptest.NewRequest(http.MethodPost, "/auth/laasie/token", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		cookies := cookiesByName(rec)
		require.Len(t, cookies, 1)
		c := cookies[sessions.LaasieAccessTokenCookieName]
		require.NotNil(t, c)
		require.False(t, c.HttpOnly)
		require.NotEqual(t, "laasie-token", c.Value)
		require.Equal(t, 60*60, c.MaxAge)

		upstream := h.laasie.last(t)
		require.Equal(t, "/auth", upstream.Path)
		require.JSONEq(t, `{"api_id":"laasie-user","api_key":"laasie-pass"}`, upstream.Body)
	})

	failures := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", jsonResponse(http.StatusUnauthorized, `{"message":"bad credentials"}`)},
		{"no token in body", jsonResponse(http.StatusOK, `{"jwt":"x"}`)},
		{"not json", jsonResponse(http.StatusOK, `<html></html>`)},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.laasie.respond(tc.handler)

			rec := h.do(httptest.NewRequest(http.MethodPost, "/auth/laasie/token", nil))
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.Equal(t, "An internal error occurred", rec.Body.String())
			require.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	h := newHarness(t)
	cookies := h.startSession(t)

	rec := h.do(withCookies(httptest.NewRequest(http.MethodPost, "/logout", nil), cookies...))
	require.Equal(t, http.StatusNoContent, rec.Code)

	cleared := cookiesByName(rec)
	require.Len(t, cleared, 4)
	for _, name := range []string{
		sessions.TenantCookieName,
		sessions.AccessTokenCookieName,
		sessions.RefreshTokenCookieName,
		sessions.LaasieAccessTokenCookieName,
	} {
		require.Contains(t, cleared, name)
		require.Equal(t, -1, cleared[name].MaxAge, name)
	}

	// Logging out twice is fine
	rec = h.do(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	h := newHarness(t)

	handler := h.server.RecoverMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
