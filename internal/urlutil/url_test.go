package urlutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"x&y=z", "x%26y%3Dz"},
		{"safe-_.~", "safe-_.~"},
		{"中", "%E4%B8%AD"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestEncodeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space in segment", "http://example.test/a b/c", "http://example.test/a%20b/c"},
		{"host only", "http://example.test", "http://example.test"},
		{"trailing slash", "http://example.test/", "http://example.test/"},
		{"port kept", "http://example.test:8080/x y", "http://example.test:8080/x%20y"},
		{"repeated segment", "http://example.test/a b/a b", "http://example.test/a%20b/a%20b"},
		{"segment equal to host", "http://a/a/a", "http://a/a/a"},
		{"unicode", "https://example.test/文件", "https://example.test/%E6%96%87%E4%BB%B6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeURLErrors(t *testing.T) {
	for _, in := range []string{"example.test/a", "://example.test", "http:///path"} {
		t.Run(in, func(t *testing.T) {
			_, err := EncodeURL(in)
			require.Error(t, err)
			assert.True(t, failure.Is(err, failure.Format))
		})
	}
}

func TestEncodeQueryURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pairs", "http://example.test/s?q=a b&lang=zh cn", "http://example.test/s?q=a%20b&lang=zh%20cn"},
		{"no query", "http://example.test/a b", "http://example.test/a%20b"},
		{"key without value", "http://example.test/s?flag", "http://example.test/s?flag="},
		{"value containing equals", "http://example.test/s?a=b=c", "http://example.test/s?a=b%3Dc"},
		{"empty pairs skipped", "http://example.test/s?a=1&&b=2", "http://example.test/s?a=1&b=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeQueryURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := EncodeQueryURL("no-scheme?a=1")
	assert.True(t, failure.Is(err, failure.Format))
}

type staticParams string

func (s staticParams) Encode() string { return string(s) }

type captured struct {
	method      string
	query       string
	body        string
	contentType string
	cookie      string
	userAgent   []string
}

func newCaptureServer(t *testing.T, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*got = captured{
			method:      r.Method,
			query:       r.URL.RawQuery,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			cookie:      r.Header.Get("Cookie"),
			userAgent:   r.Header.Values("User-Agent"),
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGet(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	resp, err := Get(context.Background(), srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode())
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, http.MethodGet, got.method)
	assert.Empty(t, got.cookie)
	assert.Empty(t, got.userAgent)
}

func TestGetWithParams(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	_, err := GetWithParams(context.Background(), srv.URL+"/search", staticParams("q=a%20b"))
	require.NoError(t, err)
	assert.Equal(t, "q=a%20b", got.query)
}

func TestPost(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	_, err := Post(context.Background(), srv.URL+"/form", "a=1&b=2")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "a=1&b=2", got.body)
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)

	_, err = PostParams(context.Background(), srv.URL+"/form", staticParams("k=v"))
	require.NoError(t, err)
	assert.Equal(t, "k=v", got.body)

	_, err = PostEmpty(context.Background(), srv.URL+"/form")
	require.NoError(t, err)
	assert.Empty(t, got.body)
}

func TestRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	_, err := Get(context.Background(), target)
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Request))

	_, err = Post(context.Background(), "not a url", "")
	assert.True(t, failure.Is(err, failure.Format))
}
