package session

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GriffinCanCode/requests/internal/cookies"
	"github.com/GriffinCanCode/requests/internal/monitoring"
	"github.com/GriffinCanCode/requests/internal/response"
	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/GriffinCanCode/requests/internal/shared/id"
	"github.com/GriffinCanCode/requests/internal/transport"
	"github.com/GriffinCanCode/requests/internal/urlutil"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	cookieHeader      = "Cookie"
	contentTypeHeader = "Content-Type"
	userAgentHeader   = "User-Agent"
	formContentType   = "application/x-www-form-urlencoded"

	// DefaultUserAgent is the desktop browser agent sent by NewDefault
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.130 Safari/537.36"
)

// Session issues requests that share a header set and a cookie jar.
//
// Every response's Set-Cookie values are merged into the jar, and the next
// request carries the merged Cookie header. A Session is not safe for
// concurrent use.
type Session struct {
	id      id.SessionID
	jar     *cookies.Jar
	headers *Headers
	client  *resty.Client
	cfg     transport.Config
	log     *zap.Logger
	metrics *monitoring.Metrics
}

// Option configures a Session
type Option func(*Session)

// WithTransport builds the session client from cfg
func WithTransport(cfg transport.Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithClient uses an existing resty client instead of building one
func WithClient(client *resty.Client) Option {
	return func(s *Session) {
		s.client = client
	}
}

// WithLogger sets the request logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records every exchange on m
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// New creates a session with no headers
func New(opts ...Option) *Session {
	s := &Session{
		id:      id.NewSessionID(),
		jar:     cookies.NewJar(),
		headers: NewHeaders(),
		cfg:     transport.DefaultConfig(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = transport.New(s.cfg)
	}
	s.log = s.log.With(zap.String("session", s.id.String()))
	return s
}

// NewWithHeaders creates a session using h as its header set. A Cookie
// entry in h seeds the jar.
func NewWithHeaders(h *Headers, opts ...Option) (*Session, error) {
	s := New(opts...)
	if h != nil {
		s.headers = h
	}
	if raw, ok := lookupFold(s.headers, cookieHeader); ok {
		if err := s.jar.AddHeaderList(raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewDefault creates a session with browser-like default headers
func NewDefault(opts ...Option) *Session {
	s := New(opts...)
	s.headers.Set("Accept", "*/*")
	s.headers.Set("Connection", "keep-alive")
	s.headers.Set("User-Agent", DefaultUserAgent)
	return s
}

// ID returns the session identifier used in logs
func (s *Session) ID() id.SessionID {
	return s.id
}

// FollowRedirects reports whether the session transport follows redirects
func (s *Session) FollowRedirects() bool {
	return s.cfg.FollowRedirects
}

// Get sends target unchanged with the session headers and cookies
func (s *Session) Get(ctx context.Context, target string) (*response.Response, error) {
	return s.execute(ctx, http.MethodGet, target, nil)
}

// GetWithParams encodes target, appends "?" plus the encoded params and sends it
func (s *Session) GetWithParams(ctx context.Context, target string, params urlutil.Encoder) (*response.Response, error) {
	encoded, err := urlutil.EncodeURL(target)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, encoded+"?"+params.Encode())
}

// Post encodes target and sends body as the request body
func (s *Session) Post(ctx context.Context, target, body string) (*response.Response, error) {
	encoded, err := urlutil.EncodeURL(target)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, http.MethodPost, encoded, &body)
}

// PostParams posts the encoded params
func (s *Session) PostParams(ctx context.Context, target string, params urlutil.Encoder) (*response.Response, error) {
	return s.Post(ctx, target, params.Encode())
}

// PostEmpty posts an empty body
func (s *Session) PostEmpty(ctx context.Context, target string) (*response.Response, error) {
	return s.Post(ctx, target, "")
}

func (s *Session) execute(ctx context.Context, method, target string, body *string) (*response.Response, error) {
	reqID := id.NewRequestID()
	log := s.log.With(
		zap.String("request", reqID.String()),
		zap.String("method", method),
		zap.String("url", target),
	)

	req := s.client.R().SetContext(ctx)
	hasContentType := false
	s.headers.Each(func(name, value string) {
		switch {
		case strings.EqualFold(name, cookieHeader):
			// recomputed from the jar below
		case strings.EqualFold(name, userAgentHeader):
			req.SetHeader(userAgentHeader, value)
		case strings.EqualFold(name, contentTypeHeader):
			req.SetHeader(contentTypeHeader, value)
			hasContentType = true
		default:
			req.SetHeaderVerbatim(name, value)
		}
	})
	if cookie := s.jar.String(); cookie != "" {
		req.SetHeader(cookieHeader, cookie)
	}
	if body != nil {
		if !hasContentType {
			req.SetHeader(contentTypeHeader, formContentType)
		}
		req.SetBody(*body)
	}

	start := time.Now()
	raw, err := req.Execute(method, target)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordError(method)
		log.Debug("request failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, failure.New(failure.Request, "session."+strings.ToLower(method), err)
	}

	resp := response.New(raw.RawResponse, raw.Body())
	received := s.foldCookies(log, resp)

	s.metrics.RecordRequest(method, resp.StatusCode(), duration, len(resp.Bytes()))
	s.metrics.RecordCookies(received)
	log.Debug("request completed",
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Bytes())),
		zap.Duration("duration", duration),
		zap.Int("cookies", received),
	)
	return resp, nil
}

// foldCookies merges every Set-Cookie value into the jar and refreshes the
// stored Cookie header. Malformed values are logged and skipped.
func (s *Session) foldCookies(log *zap.Logger, resp *response.Response) int {
	received := 0
	for _, value := range resp.HeaderValues("Set-Cookie") {
		if err := s.jar.AddSetCookie(value); err != nil {
			log.Warn("skipping malformed set-cookie", zap.String("value", value), zap.Error(err))
			continue
		}
		received++
	}
	if received > 0 {
		s.syncCookieHeader()
	}
	return received
}

// syncCookieHeader mirrors the jar into the stored Cookie header. An empty
// jar removes the header under any spelling.
func (s *Session) syncCookieHeader() {
	if s.jar.Len() > 0 {
		s.headers.Set(cookieHeader, s.jar.String())
		return
	}
	var stale []string
	s.headers.Each(func(name, _ string) {
		if strings.EqualFold(name, cookieHeader) {
			stale = append(stale, name)
		}
	})
	for _, name := range stale {
		s.headers.Delete(name)
	}
}

// SetHeaders replaces the session header set
func (s *Session) SetHeaders(h *Headers) {
	if h == nil {
		h = NewHeaders()
	}
	s.headers = h
}

// SetHeaderPairs replaces the session header set with [name, value] rows
func (s *Session) SetHeaderPairs(pairs [][]string) error {
	h, err := HeadersFromPairs(pairs)
	if err != nil {
		return err
	}
	s.headers = h
	return nil
}

// AddHeader stores a single header, replacing an existing value
func (s *Session) AddHeader(name, value string) {
	s.headers.Set(name, value)
}

// Header returns a stored header value
func (s *Session) Header(name string) (string, bool) {
	return s.headers.Get(name)
}

// RemoveHeader deletes a stored header
func (s *Session) RemoveHeader(name string) bool {
	return s.headers.Delete(name)
}

// HeaderPairs returns the stored headers as [name, value] rows
func (s *Session) HeaderPairs() [][]string {
	return s.headers.Pairs()
}

// HeaderSet returns the live header set
func (s *Session) HeaderSet() *Headers {
	return s.headers
}

// PrintHeaders writes the stored headers
func (s *Session) PrintHeaders(w io.Writer) {
	s.headers.Print(w)
}

// Jar returns the live cookie jar
func (s *Session) Jar() *cookies.Jar {
	return s.jar
}

// SetJar replaces the cookie jar. A nil jar empties the session cookies.
func (s *Session) SetJar(j *cookies.Jar) {
	if j == nil {
		j = cookies.NewJar()
	}
	s.jar = j
	s.syncCookieHeader()
}

// AddCookie stores a single cookie
func (s *Session) AddCookie(name, value string) {
	s.jar.AddPair(name, value)
	s.syncCookieHeader()
}

// AddCookieString parses one cookie assignment such as "sid=abc; Path=/"
func (s *Session) AddCookieString(text string) error {
	if err := s.jar.AddSetCookie(text); err != nil {
		return err
	}
	s.syncCookieHeader()
	return nil
}

// AddCookies parses a Cookie header value holding several pairs
func (s *Session) AddCookies(headerList string) error {
	err := s.jar.AddHeaderList(headerList)
	s.syncCookieHeader()
	return err
}

// PrintCookies writes the jar contents
func (s *Session) PrintCookies(w io.Writer) {
	s.jar.Print(w)
}

func lookupFold(h *Headers, name string) (string, bool) {
	var (
		found string
		ok    bool
	)
	h.Each(func(n, v string) {
		if !ok && strings.EqualFold(n, name) {
			found, ok = v, true
		}
	})
	return found, ok
}
