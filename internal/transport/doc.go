// Package transport builds the HTTP client used for every exchange.
//
// Built on go-resty/resty over a go-cleanhttp transport:
//   - No connection reuse: each call dials and releases its own connection
//   - No internal cookie jar: cookies are owned by the session
//   - Redirect following and restricted headers are explicit Config fields
//     instead of process-wide switches
//
// Example Usage:
//
//	client := transport.New(transport.DefaultConfig())
//	resp, err := client.R().SetContext(ctx).Get("http://example.test/")
package transport
