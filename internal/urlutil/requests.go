package urlutil

import (
	"context"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/requests/internal/response"
	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/GriffinCanCode/requests/internal/transport"
)

const formContentType = "application/x-www-form-urlencoded"

// Get sends a bare GET with no headers or cookies. target is used as-is;
// encode it first if it contains unsafe characters.
func Get(ctx context.Context, target string) (*response.Response, error) {
	return do(ctx, http.MethodGet, target, nil)
}

// GetWithParams encodes target and appends "?" plus the encoded params
func GetWithParams(ctx context.Context, target string, params Encoder) (*response.Response, error) {
	encoded, err := EncodeURL(target)
	if err != nil {
		return nil, err
	}
	return Get(ctx, encoded+"?"+params.Encode())
}

// Post encodes target and sends body as-is. body is not percent-encoded.
func Post(ctx context.Context, target, body string) (*response.Response, error) {
	encoded, err := EncodeURL(target)
	if err != nil {
		return nil, err
	}
	return do(ctx, http.MethodPost, encoded, &body)
}

// PostParams posts the encoded params as the request body
func PostParams(ctx context.Context, target string, params Encoder) (*response.Response, error) {
	return Post(ctx, target, params.Encode())
}

// PostEmpty posts an empty body
func PostEmpty(ctx context.Context, target string) (*response.Response, error) {
	return Post(ctx, target, "")
}

func do(ctx context.Context, method, target string, body *string) (*response.Response, error) {
	req := transport.New(transport.DefaultConfig()).R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", formContentType).SetBody(*body)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, failure.New(failure.Request, "urlutil."+strings.ToLower(method), err)
	}
	return response.New(resp.RawResponse, resp.Body()), nil
}
