// Package urlutil provides stateless URL encoding and one-shot requests.
//
// Encoding:
//   - EncodeURL: percent-encodes every path segment, keeps scheme and host
//   - EncodeQueryURL: additionally re-encodes each query key/value pair
//   - Escape: component escaping with %20 for spaces
//
// Requests (no headers, no cookie jar):
//   - Get, GetWithParams
//   - Post, PostParams, PostEmpty
//
// Example Usage:
//
//	target, err := urlutil.EncodeQueryURL("http://example.test/a b?q=x y")
//	// http://example.test/a%20b?q=x%20y
package urlutil
