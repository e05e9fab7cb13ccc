// Package response wraps a completed HTTP exchange.
//
// The body is drained exactly once at construction. Accessors cover:
//   - Text: UTF-8, a named encoding, or the detected charset
//   - JSON: the single object between the first '{' and last '}', parsed
//     with bytedance/sonic and memoized
//   - Query: jq expressions over the JSON view
//   - Headers: flattened name/value rows
//   - Sinks: local files or any afero filesystem
//
// Example Usage:
//
//	resp, err := sess.Get(ctx, "http://example.test/api")
//	token, ok, err := resp.JSONValue("token")
package response
