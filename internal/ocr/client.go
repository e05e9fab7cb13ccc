package ocr

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/GriffinCanCode/requests/internal/params"
	"github.com/GriffinCanCode/requests/internal/response"
	"github.com/GriffinCanCode/requests/internal/session"
	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const (
	DefaultTokenURL   = "https://aip.baidubce.com/oauth/2.0/token"
	DefaultGeneralURL = "https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic"
)

// Client recognizes text in images with the Baidu general OCR API.
// The access token is fetched once when the client is created.
type Client struct {
	tokenURL   string
	generalURL string
	token      string
	sessOpts   []session.Option
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenURL overrides the token endpoint
func WithTokenURL(u string) Option {
	return func(c *Client) {
		c.tokenURL = u
	}
}

// WithGeneralURL overrides the recognition endpoint
func WithGeneralURL(u string) Option {
	return func(c *Client) {
		c.generalURL = u
	}
}

// WithSessionOptions configures the sessions used for each call
func WithSessionOptions(opts ...session.Option) Option {
	return func(c *Client) {
		c.sessOpts = append(c.sessOpts, opts...)
	}
}

// WithLogger sets the client logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

type recognizeResult struct {
	WordsResult []struct {
		Words string `json:"words"`
	} `json:"words_result"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// New exchanges the client credentials for an access token
func New(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	c := &Client{
		tokenURL:   DefaultTokenURL,
		generalURL: DefaultGeneralURL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	form := params.New()
	form.Add("grant_type", "client_credentials")
	form.Add("client_id", clientID)
	form.Add("client_secret", clientSecret)

	resp, err := c.post(ctx, c.tokenURL, form)
	if err != nil {
		return nil, failure.Wrapf(failure.OCR, "ocr.token", err, "token request failed")
	}

	token, ok, err := resp.JSONValue("access_token")
	if err != nil {
		return nil, failure.Wrapf(failure.OCR, "ocr.token", err, "%s", resp.Text())
	}
	if !ok || token == "" {
		return nil, failure.Newf(failure.OCR, "ocr.token", "%s", resp.Text())
	}

	c.token = token
	c.log.Debug("ocr token acquired", zap.String("token_url", c.tokenURL))
	return c, nil
}

// Token returns the access token in use
func (c *Client) Token() string {
	return c.token
}

// Recognize returns the recognized text lines of image in reading order
func (c *Client) Recognize(ctx context.Context, image []byte) ([]string, error) {
	form := params.New()
	form.Add("access_token", c.token)
	form.Add("image", base64.StdEncoding.EncodeToString(image))

	resp, err := c.post(ctx, c.generalURL, form)
	if err != nil {
		return nil, failure.Wrapf(failure.OCR, "ocr.recognize", err, "recognize request failed")
	}

	var result recognizeResult
	if err := sonic.Unmarshal(resp.Bytes(), &result); err != nil {
		return nil, failure.Wrapf(failure.OCR, "ocr.recognize", err, "%s", resp.Text())
	}
	if result.ErrorCode != 0 {
		return nil, failure.Newf(failure.OCR, "ocr.recognize", "error %d: %s", result.ErrorCode, result.ErrorMsg)
	}
	if result.WordsResult == nil {
		return nil, failure.Newf(failure.OCR, "ocr.recognize", "missing words_result: %s", resp.Text())
	}

	lines := make([]string, len(result.WordsResult))
	for i, w := range result.WordsResult {
		lines[i] = w.Words
	}
	c.log.Debug("ocr recognized", zap.Int("lines", len(lines)), zap.Int("image_bytes", len(image)))
	return lines, nil
}

// RecognizeText returns the recognized lines each followed by a newline
func (c *Client) RecognizeText(ctx context.Context, image []byte) (string, error) {
	lines, err := c.Recognize(ctx, image)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (c *Client) post(ctx context.Context, target string, form *params.Params) (*response.Response, error) {
	return session.New(c.sessOpts...).PostParams(ctx, target, form)
}
