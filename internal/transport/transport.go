package transport

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-cleanhttp"
)

// restrictedHeaders are only sent when AllowRestrictedHeaders is set
var restrictedHeaders = []string{
	"Access-Control-Request-Headers",
	"Access-Control-Request-Method",
	"Connection",
	"Content-Transfer-Encoding",
	"Host",
	"Keep-Alive",
	"Origin",
	"Trailer",
	"Upgrade",
	"Via",
}

const (
	userAgentHeader  = "User-Agent"
	restyAgentPrefix = "go-resty/"
)

// Config defines transport behavior fixed at construction time
type Config struct {
	// FollowRedirects enables automatic handling of 3xx responses
	FollowRedirects bool
	// MaxRedirects caps the redirect chain when FollowRedirects is set
	MaxRedirects int
	// AllowRestrictedHeaders lets callers set Host, Connection, Origin and
	// similar headers. A Host header overrides the request host.
	AllowRestrictedHeaders bool
	// UserAgent replaces the transport default when non-empty
	UserAgent string
}

// DefaultConfig returns the transport defaults
func DefaultConfig() Config {
	return Config{
		FollowRedirects:        true,
		MaxRedirects:           10,
		AllowRestrictedHeaders: true,
	}
}

// New creates a resty client for cfg.
//
// The client keeps no cookie jar of its own and does not reuse connections
// across calls. No timeout or retry policy is configured.
func New(cfg Config) *resty.Client {
	client := resty.New()
	client.SetTransport(cleanhttp.DefaultTransport())
	client.SetCookieJar(nil)
	client.SetRetryCount(0)

	if cfg.UserAgent != "" {
		client.SetHeader(userAgentHeader, cfg.UserAgent)
	}

	if cfg.FollowRedirects {
		maxRedirects := cfg.MaxRedirects
		if maxRedirects <= 0 {
			maxRedirects = 10
		}
		client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	} else {
		client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	}

	allow := cfg.AllowRestrictedHeaders
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		applyRestricted(req, allow)
		applyUserAgent(req)
		return nil
	})

	return client
}

// applyRestricted either honors or strips restricted request headers
func applyRestricted(req *http.Request, allow bool) {
	if !allow {
		for _, name := range restrictedHeaders {
			req.Header.Del(name)
		}
		return
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
		req.Header.Del("Host")
	}
}

// applyUserAgent drops the resty default agent and folds any other spelling of
// the header into one canonical value. With nothing left the key is kept empty
// so net/http sends no User-Agent at all.
func applyUserAgent(req *http.Request) {
	var agent string
	for name, values := range req.Header {
		if !strings.EqualFold(name, userAgentHeader) {
			continue
		}
		for _, v := range values {
			if agent == "" && !strings.HasPrefix(v, restyAgentPrefix) {
				agent = v
			}
		}
		delete(req.Header, name)
	}
	req.Header[userAgentHeader] = []string{agent}
}
