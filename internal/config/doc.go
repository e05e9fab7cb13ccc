// Package config provides 12-factor configuration for the requests CLI.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment values.
//
// Configuration Sections:
//   - Client: redirect policy, restricted headers, user agent, header file
//   - Logging: log level, output format, rotating log file
//   - OCR: OCR credentials and endpoints
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	client := transport.New(cfg.Client.Transport())
//
// Environment Variables:
//   - REQUESTS_FOLLOW_REDIRECTS, REQUESTS_MAX_REDIRECTS
//   - REQUESTS_ALLOW_RESTRICTED_HEADERS, REQUESTS_USER_AGENT, REQUESTS_HEADERS_FILE
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - OCR_CLIENT_ID, OCR_CLIENT_SECRET, OCR_TOKEN_URL, OCR_GENERAL_URL
package config
