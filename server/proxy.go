package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	xoauth2 "golang.org/x/oauth2"
)

// Forwarder relays a gated request to an upstream API with the session's
// access token as bearer. Status and body come back untouched, only the
// upstream Content-Type is kept.
type Forwarder struct {
	httpClient *http.Client
}

func NewForwarder(httpClient *http.Client) *Forwarder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Forwarder{httpClient: httpClient}
}

// Headers never forwarded upstream. Accept-Encoding is dropped so the
// transport negotiates compression itself and the relayed body is plain.
var excludedRequestHeaders = map[string]bool{
	"authorization":       true, // We'll add our own
	"cookie":              true,
	"host":                true,
	"accept-encoding":     true,
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"proxy-connection":    true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
}

// Forward sends r to upstreamURL, with r's raw query appended, and writes the
// upstream response to w. A transport failure is a 500.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request, upstreamURL string, accessToken string) {
	logger := zerolog.Ctx(r.Context())

	if r.URL.RawQuery != "" {
		upstreamURL += "?" + r.URL.RawQuery
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), r.Method, upstreamURL, r.Body)
	if err != nil {
		logger.Err(err).Str("upstream", upstreamURL).Msg("Failed to create upstream request")
		writeJSONError(w, "server_error", internalErrorMessage, http.StatusInternalServerError)
		return
	}
	upstreamReq.ContentLength = r.ContentLength

	copyRequestHeaders(upstreamReq.Header, r.Header)
	if hasBody(r.Method) && upstreamReq.Header.Get("Content-Type") == "" {
		upstreamReq.Header.Set("Content-Type", contentTypeJSON)
	}
	(&xoauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}).SetAuthHeader(upstreamReq)

	logger.Info().Str("upstream", upstreamURL).Msg("Proxying request")
	upstreamResp, err := f.httpClient.Do(upstreamReq)
	if err != nil {
		logger.Err(err).Str("upstream", upstreamURL).Msg("Failed to reach upstream service")
		writeJSONError(w, "server_error", internalErrorMessage, http.StatusInternalServerError)
		return
	}
	defer upstreamResp.Body.Close()

	contentType := upstreamResp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeJSON
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(upstreamResp.StatusCode)

	if _, err := io.Copy(w, upstreamResp.Body); err != nil {
		logger.Err(err).Msg("Failed to copy upstream response body")
	}
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// copyRequestHeaders copies headers from src to dst, excluding certain headers
func copyRequestHeaders(dst, src http.Header) {
	for key, values := range src {
		if excludedRequestHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
