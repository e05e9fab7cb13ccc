package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/GriffinCanCode/requests/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOCRServer(t *testing.T, recognizeBody string) *testutil.Server {
	t.Helper()
	return testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":2592000}`))
		case "/general":
			_, _ = w.Write([]byte(recognizeBody))
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestClient(t *testing.T, srv *testutil.Server) *Client {
	t.Helper()
	c, err := New(context.Background(), "id", "secret",
		WithTokenURL(srv.Endpoint("/token")),
		WithGeneralURL(srv.Endpoint("/general")),
	)
	require.NoError(t, err)
	return c
}

func TestTokenExchange(t *testing.T) {
	srv := newOCRServer(t, `{}`)
	c := newTestClient(t, srv)
	assert.Equal(t, "tok-1", c.Token())

	form, err := url.ParseQuery(srv.Last(t).Body)
	require.NoError(t, err)
	assert.Equal(t, "client_credentials", form.Get("grant_type"))
	assert.Equal(t, "id", form.Get("client_id"))
	assert.Equal(t, "secret", form.Get("client_secret"))
}

func TestTokenMissing(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Text(http.StatusUnauthorized, "application/json",
		`{"error":"invalid_client","error_description":"unknown client id"}`))

	_, err := New(context.Background(), "id", "bad", WithTokenURL(srv.Endpoint("/token")))
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.OCR))
	assert.True(t, errors.Is(err, failure.ErrOCR))
	assert.False(t, errors.Is(err, failure.ErrScript))
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestTokenNotJSON(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Text(http.StatusBadGateway, "text/html", "<html>gateway</html>"))

	_, err := New(context.Background(), "id", "secret", WithTokenURL(srv.Endpoint("/token")))
	assert.True(t, failure.Is(err, failure.OCR))
}

func TestRecognize(t *testing.T) {
	srv := newOCRServer(t, `{"log_id":1,"words_result_num":2,"words_result":[{"words":"hello"},{"words":"世界"}]}`)
	c := newTestClient(t, srv)
	image := []byte{0x89, 'P', 'N', 'G'}

	lines, err := c.Recognize(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "世界"}, lines)

	form, err := url.ParseQuery(srv.Last(t).Body)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", form.Get("access_token"))
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), form.Get("image"))

	text, err := c.RecognizeText(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, "hello\n世界\n", text)
}

func TestRecognizeServiceError(t *testing.T) {
	srv := newOCRServer(t, `{"error_code":110,"error_msg":"Access token invalid or no longer valid"}`)
	c := newTestClient(t, srv)

	_, err := c.Recognize(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.OCR))
	assert.Contains(t, err.Error(), "110")

	_, err = c.RecognizeText(context.Background(), []byte("img"))
	assert.True(t, failure.Is(err, failure.OCR))
}

func TestRecognizeMissingResult(t *testing.T) {
	srv := newOCRServer(t, `{"log_id":1}`)
	c := newTestClient(t, srv)

	_, err := c.Recognize(context.Background(), []byte("img"))
	assert.True(t, failure.Is(err, failure.OCR))
}
