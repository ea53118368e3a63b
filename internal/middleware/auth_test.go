package middleware

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func basic(credentials string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func Test_ParseBasicAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		wantEmail    string
		wantPassword string
		wantOK       bool
	}{
		{
			name:         "valid_credentials",
			header:       basic("reader@library.local:secret1"),
			wantEmail:    "reader@library.local",
			wantPassword: "secret1",
			wantOK:       true,
		},
		{
			name:         "password_may_contain_colons",
			header:       basic("reader@library.local:pa:ss:word"),
			wantEmail:    "reader@library.local",
			wantPassword: "pa:ss:word",
			wantOK:       true,
		},
		{
			name:         "scheme_is_case_insensitive",
			header:       "basic " + base64.StdEncoding.EncodeToString([]byte("a@b:secret1")),
			wantEmail:    "a@b",
			wantPassword: "secret1",
			wantOK:       true,
		},
		{
			name:   "empty_header",
			header: "",
			wantOK: false,
		},
		{
			name:   "bearer_scheme_rejected",
			header: "Bearer some.jwt.token",
			wantOK: false,
		},
		{
			name:   "broken_base64",
			header: "Basic !!!not-base64!!!",
			wantOK: false,
		},
		{
			name:   "payload_without_colon",
			header: "Basic " + base64.StdEncoding.EncodeToString([]byte("no-colon-here")),
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			email, password, ok := parseBasicAuth(tc.header)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantEmail, email)
				assert.Equal(t, tc.wantPassword, password)
			}
		})
	}
}

func Test_Unauthorized_WritesChallengeAndJSONBody(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	Unauthorized(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, `Basic realm="library"`, string(ctx.Response.Header.Peek("WWW-Authenticate")))
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "Неверный email или пароль", body["error"])
}
