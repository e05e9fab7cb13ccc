// Package session issues HTTP requests that share headers and cookies.
//
// Each request runs the same pipeline:
//   - stored headers are applied verbatim in stored order
//   - the Cookie header is recomputed from the jar, replacing any stored one
//   - the exchange runs on a resty client built from transport.Config
//   - every Set-Cookie value is merged into the jar by name
//   - the stored Cookie header is refreshed for the next call
//
// Get sends its URL unchanged. GetWithParams and every Post variant
// percent-encode the URL path first.
//
// Example Usage:
//
//	sess := session.NewDefault(session.WithLogger(logger))
//	resp, err := sess.PostParams(ctx, "https://example.test/login", form)
//	resp, err = sess.Get(ctx, "https://example.test/profile") // carries the login cookie
package session
