package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Client config
	assert.True(t, cfg.Client.FollowRedirects)
	assert.Equal(t, 10, cfg.Client.MaxRedirects)
	assert.True(t, cfg.Client.AllowRestrictedHeaders)
	assert.Empty(t, cfg.Client.UserAgent)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// OCR config
	assert.Equal(t, "https://aip.baidubce.com/oauth/2.0/token", cfg.OCR.TokenURL)
	assert.Equal(t, "https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic", cfg.OCR.GeneralURL)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, Default().Client, cfg.Client)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"REQUESTS_FOLLOW_REDIRECTS":         "false",
		"REQUESTS_MAX_REDIRECTS":            "3",
		"REQUESTS_ALLOW_RESTRICTED_HEADERS": "false",
		"REQUESTS_USER_AGENT":               "probe/1.0",
		"REQUESTS_HEADERS_FILE":             "/etc/requests/headers.yaml",
		"LOG_LEVEL":                         "debug",
		"LOG_DEV":                           "true",
		"LOG_FILE":                          "/tmp/requests.log",
		"OCR_CLIENT_ID":                     "id",
		"OCR_CLIENT_SECRET":                 "secret",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Client.FollowRedirects)
	assert.Equal(t, 3, cfg.Client.MaxRedirects)
	assert.False(t, cfg.Client.AllowRestrictedHeaders)
	assert.Equal(t, "probe/1.0", cfg.Client.UserAgent)
	assert.Equal(t, "/etc/requests/headers.yaml", cfg.Client.HeadersFile)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/tmp/requests.log", cfg.Logging.File)

	assert.Equal(t, "id", cfg.OCR.ClientID)
	assert.Equal(t, "secret", cfg.OCR.ClientSecret)
	assert.Equal(t, Default().OCR.TokenURL, cfg.OCR.TokenURL)
}

func TestLoadInvalidValue(t *testing.T) {
	err := os.Setenv("REQUESTS_MAX_REDIRECTS", "many")
	require.NoError(t, err)
	defer os.Unsetenv("REQUESTS_MAX_REDIRECTS")

	_, err = Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 10, cfg.Client.MaxRedirects)
}

func TestClientTransport(t *testing.T) {
	client := ClientConfig{FollowRedirects: false, MaxRedirects: 2, UserAgent: "ua"}

	tc := client.Transport()
	assert.False(t, tc.FollowRedirects)
	assert.Equal(t, 2, tc.MaxRedirects)
	assert.False(t, tc.AllowRestrictedHeaders)
	assert.Equal(t, "ua", tc.UserAgent)
}

func TestLogConfigLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      LogConfig
		wantDev  bool
		wantFile bool
		level    string
	}{
		{"production", LogConfig{Level: "warn"}, false, false, "warn"},
		{"development", LogConfig{Development: true}, true, false, "debug"},
		{"with file", LogConfig{Level: "info", File: "out.log"}, false, true, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := tt.cfg.Logger()
			assert.Equal(t, tt.wantDev, lc.Development)
			assert.Equal(t, tt.level, lc.Level)
			assert.Equal(t, tt.wantFile, lc.File != nil)
		})
	}
}

func TestLoadHeaderFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "User-Agent: probe/1.0\nAccept: \"*/*\"\nDNT: 1\nCookie: a=1; b=2\n"
	require.NoError(t, afero.WriteFile(fs, "/headers.yaml", []byte(content), 0o644))

	pairs, err := LoadHeaderFile(fs, "/headers.yaml")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"User-Agent", "probe/1.0"},
		{"Accept", "*/*"},
		{"DNT", "1"},
		{"Cookie", "a=1; b=2"},
	}, pairs)
}

func TestLoadHeaderFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadHeaderFile(fs, "/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("Accept: [unclosed\n"), 0o644))
	_, err = LoadHeaderFile(fs, "/bad.yaml")
	assert.Error(t, err)
}
