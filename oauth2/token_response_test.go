package oauth2_test

import (
	"testing"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
	"github.com/jrsteele09/sfmc-session-broker/oauth2"
	"github.com/stretchr/testify/require"
)

func TestParseTokenSet(t *testing.T) {
	t.Run("complete response", func(t *testing.T) {
		ts, err := oauth2.ParseTokenSet([]byte(`{
			"access_token": "at",
			"expires_in": 1080,
			"refresh_token": "rt",
			"rest_instance_url": "https://t.rest.marketingcloudapis.com/",
			"soap_instance_url": "https://t.soap.marketingcloudapis.com/",
			"scope": "email_read offline"
		}`))
		require.NoError(t, err)
		require.Equal(t, &oauth2.TokenSet{
			AccessToken:     "at",
			ExpiresIn:       1080,
			RefreshToken:    "rt",
			RestInstanceURL: "https://t.rest.marketingcloudapis.com/",
			SoapInstanceURL: "https://t.soap.marketingcloudapis.com/",
			Scope:           "email_read offline",
		}, ts)
	})

	failures := map[string]string{
		"not json":           `<html>oops</html>`,
		"error body":         `{"error":"invalid_grant","error_description":"bad code"}`,
		"missing refresh":    `{"access_token":"at"}`,
		"wrong type":         `{"access_token":42,"refresh_token":"rt"}`,
		"empty access token": `{"access_token":"","refresh_token":"rt"}`,
		"json array":         `[]`,
	}
	for name, body := range failures {
		t.Run(name, func(t *testing.T) {
			ts, err := oauth2.ParseTokenSet([]byte(body))
			require.Nil(t, ts)
			require.ErrorIs(t, err, errors.ErrInvalidTokenResponse)
			require.ErrorIs(t, err, errors.ErrUpstream)
		})
	}
}

func TestParseSimpleToken(t *testing.T) {
	st, err := oauth2.ParseSimpleToken([]byte(`{"token":"laasie-token"}`))
	require.NoError(t, err)
	require.Equal(t, "laasie-token", st.AccessToken)

	_, err = oauth2.ParseSimpleToken([]byte(`{"access_token":"wrong-field"}`))
	require.ErrorIs(t, err, errors.ErrInvalidTokenResponse)

	_, err = oauth2.ParseSimpleToken([]byte(`nope`))
	require.ErrorIs(t, err, errors.ErrInvalidTokenResponse)
}

func TestParseErrorResponse(t *testing.T) {
	resp, ok := oauth2.ParseErrorResponse([]byte(`{"error":"invalid_token","error_description":"expired"}`))
	require.True(t, ok)
	require.Equal(t, "invalid_token", resp.Error)
	require.Equal(t, "expired", resp.ErrorDescription)

	_, ok = oauth2.ParseErrorResponse([]byte(`Service Unavailable`))
	require.False(t, ok)

	_, ok = oauth2.ParseErrorResponse([]byte(`{}`))
	require.False(t, ok)
}
