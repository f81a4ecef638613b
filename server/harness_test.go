package server_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/server"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"

	tokenSetJSON = `{
		"access_token": "new-access-token",
		"expires_in": 1079,
		"refresh_token": "new-refresh-token",
		"rest_instance_url": "https://mcdefault.rest.marketingcloudapis.com/",
		"soap_instance_url": "https://mcdefault.soap.marketingcloudapis.com/",
		"scope": "offline email_read"
	}`
)

// recordedRequest is what one of the fake upstreams received
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// upstream is a fake provider that records every request and answers with a
// handler the test can swap
type upstream struct {
	*httptest.Server

	mu       sync.Mutex
	handler  http.HandlerFunc
	requests []recordedRequest
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{handler: handler}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		u.mu.Lock()
		u.requests = append(u.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(body),
		})
		h := u.handler
		u.mu.Unlock()

		h(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) respond(handler http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handler = handler
}

func (u *upstream) received() []recordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]recordedRequest(nil), u.requests...)
}

func (u *upstream) last(t *testing.T) recordedRequest {
	t.Helper()
	requests := u.received()
	require.NotEmpty(t, requests)
	return requests[len(requests)-1]
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// harness is the broker wired to fake SFMC auth, SFMC REST and Laasie hosts.
// The SFMC templates put the tenant in the path, so /mcdefault/v2/token is the
// default tenant's token endpoint.
type harness struct {
	server *server.Server
	auth   *upstream
	rest   *upstream
	laasie *upstream
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		auth: newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/v2/userinfo") {
				jsonResponse(http.StatusOK, `{"user":{"email":"user@example.com"}}`)(w, r)
				return
			}
			jsonResponse(http.StatusOK, tokenSetJSON)(w, r)
		}),
		rest: newUpstream(t, jsonResponse(http.StatusOK, `{"count":0,"items":[]}`)),
		laasie: newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth" {
				jsonResponse(http.StatusOK, `{"token":"laasie-token"}`)(w, r)
				return
			}
			jsonResponse(http.StatusCreated, `{"saved":true}`)(w, r)
		}),
	}

	cfg, err := config.NewFromEnvMap(map[string]string{
		"SECRET_KEY":                    testSecret,
		"SELF_DOMAIN":                   "https://app.example.com",
		"SFMC_CLIENT_ID":                "client-id",
		"SFMC_CLIENT_SECRET":            "client-secret",
		"SFMC_DEFAULT_TENANT_SUBDOMAIN": "mcdefault",
		"SFMC_AUTH_URL_TEMPLATE":        h.auth.URL + "/{tssd}",
		"SFMC_REST_URL_TEMPLATE":        h.rest.URL + "/{tssd}",
		"LAASIE_API_BASE_URL":           h.laasie.URL,
		"LAASIE_API_USERNAME":           "laasie-user",
		"LAASIE_API_PASSWORD":           "laasie-pass",
	})
	require.NoError(t, err)

	h.server, err = server.New(cfg, &http.Client{})
	require.NoError(t, err)
	return h
}

func (h *harness) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, r)
	return rec
}

// authorize starts a login and returns the state nonce from the redirect
func (h *harness) authorize(t *testing.T) string {
	t.Helper()
	rec := h.do(httptest.NewRequest(http.MethodGet, "/oauth2/sfmc/authorize", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

// startSession runs authorize and callback and returns the session cookies
func (h *harness) startSession(t *testing.T) []*http.Cookie {
	t.Helper()
	state := h.authorize(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/oauth2/sfmc/callback?code=the-code&state="+url.QueryEscape(state), nil))
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 3)
	return cookies
}

func withCookies(r *http.Request, cookies ...*http.Cookie) *http.Request {
	for _, c := range cookies {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	byName := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}
	return byName
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	require.FailNow(t, "cookie not found", name)
	return nil
}
