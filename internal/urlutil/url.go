package urlutil

import (
	"net/url"
	"strings"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
)

// Encoder produces an encoded parameter string such as "a=1&b=2"
type Encoder interface {
	Encode() string
}

// Escape percent-encodes s as a URL component using UTF-8.
// Spaces become %20; only letters, digits and "-_.~" are left as-is.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EncodeURL percent-encodes each path segment of raw.
//
// The scheme and authority ("scheme://host") are kept verbatim. Segments are
// rebuilt by position, so a segment whose text also appears elsewhere in the
// URL is still encoded in place. Query strings are not handled here; use
// EncodeQueryURL for URLs carrying "?".
func EncodeURL(raw string) (string, error) {
	idx := strings.Index(raw, "://")
	if idx <= 0 {
		return "", failure.Newf(failure.Format, "urlutil.encode", "missing scheme delimiter in %q", raw)
	}

	rest := raw[idx+3:]
	authority, path, hasPath := strings.Cut(rest, "/")
	if authority == "" {
		return "", failure.Newf(failure.Format, "urlutil.encode", "missing host in %q", raw)
	}

	var sb strings.Builder
	sb.WriteString(raw[:idx+3])
	sb.WriteString(authority)
	if hasPath {
		for _, segment := range strings.Split(path, "/") {
			sb.WriteByte('/')
			sb.WriteString(Escape(segment))
		}
	}

	encoded := sb.String()
	if _, err := url.Parse(encoded); err != nil {
		return "", failure.New(failure.Format, "urlutil.encode", err)
	}
	return encoded, nil
}

// EncodeQueryURL encodes the path of raw with EncodeURL and then each
// "key=value" query pair independently. A pair without '=' becomes "key=".
// Without '?' it behaves like EncodeURL.
func EncodeQueryURL(raw string) (string, error) {
	base, query, hasQuery := strings.Cut(raw, "?")
	encoded, err := EncodeURL(base)
	if err != nil {
		return "", err
	}
	if !hasQuery {
		return encoded, nil
	}

	pairs := make([]string, 0, strings.Count(query, "&")+1)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		pairs = append(pairs, Escape(key)+"="+Escape(value))
	}
	return encoded + "?" + strings.Join(pairs, "&"), nil
}
