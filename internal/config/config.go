package config

import (
	"fmt"

	"github.com/GriffinCanCode/requests/internal/logging"
	"github.com/GriffinCanCode/requests/internal/transport"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Client  ClientConfig
	Logging LogConfig
	OCR     OCRConfig
}

// ClientConfig holds transport and session defaults.
type ClientConfig struct {
	FollowRedirects        bool   `envconfig:"REQUESTS_FOLLOW_REDIRECTS" default:"true"`
	MaxRedirects           int    `envconfig:"REQUESTS_MAX_REDIRECTS" default:"10"`
	AllowRestrictedHeaders bool   `envconfig:"REQUESTS_ALLOW_RESTRICTED_HEADERS" default:"true"`
	UserAgent              string `envconfig:"REQUESTS_USER_AGENT"`
	HeadersFile            string `envconfig:"REQUESTS_HEADERS_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
}

// OCRConfig holds OCR service credentials and endpoints.
type OCRConfig struct {
	ClientID     string `envconfig:"OCR_CLIENT_ID"`
	ClientSecret string `envconfig:"OCR_CLIENT_SECRET"`
	TokenURL     string `envconfig:"OCR_TOKEN_URL" default:"https://aip.baidubce.com/oauth/2.0/token"`
	GeneralURL   string `envconfig:"OCR_GENERAL_URL" default:"https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			FollowRedirects:        true,
			MaxRedirects:           10,
			AllowRestrictedHeaders: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		OCR: OCRConfig{
			TokenURL:   "https://aip.baidubce.com/oauth/2.0/token",
			GeneralURL: "https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic",
		},
	}
}

// Transport converts the client section into transport settings.
func (c ClientConfig) Transport() transport.Config {
	return transport.Config{
		FollowRedirects:        c.FollowRedirects,
		MaxRedirects:           c.MaxRedirects,
		AllowRestrictedHeaders: c.AllowRestrictedHeaders,
		UserAgent:              c.UserAgent,
	}
}

// Logger converts the logging section into logger settings.
func (c LogConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Development {
		cfg = logging.DevelopmentConfig()
	}
	if c.Level != "" {
		cfg.Level = c.Level
	}
	if c.File != "" {
		cfg.File = &logging.FileConfig{Path: c.File, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28}
	}
	return cfg
}
