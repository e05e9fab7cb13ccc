package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/requests/internal/ocr"
	"github.com/GriffinCanCode/requests/internal/params"
	"github.com/GriffinCanCode/requests/internal/response"
	"github.com/GriffinCanCode/requests/internal/script"
	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/GriffinCanCode/requests/internal/urlutil"
	"github.com/bytedance/sonic"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

var (
	paramFlag = cli.StringSliceFlag{
		Name:  "param, p",
		Usage: "parameter `KEY=VALUE`, repeatable",
	}
	dataFlag = cli.StringFlag{
		Name:  "data, d",
		Usage: "raw request body, sent as-is",
	}
	ocrFlags = []cli.Flag{
		cli.StringFlag{Name: "client-id", Usage: "OCR API key", EnvVar: "OCR_CLIENT_ID"},
		cli.StringFlag{Name: "client-secret", Usage: "OCR secret key", EnvVar: "OCR_CLIENT_SECRET"},
	}
)

func requestFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		cli.StringSliceFlag{
			Name:  "header, H",
			Usage: "request header `NAME: VALUE`, repeatable",
		},
		cli.StringSliceFlag{
			Name:  "cookie, b",
			Usage: "cookie list such as \"a=1; b=2\", repeatable",
		},
		cli.BoolFlag{
			Name:  "include, i",
			Usage: "print response headers before the body",
		},
		cli.StringFlag{
			Name:  "jq",
			Usage: "print the results of a jq `EXPR` over the JSON body",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "write the body to `FILE` instead of stdout",
		},
		cli.StringFlag{
			Name:  "charset",
			Usage: "decode the body with this charset instead of detecting it",
		},
		cli.BoolFlag{
			Name:  "cookies",
			Usage: "print the session cookies after the request",
		},
	}
	return append(flags, extra...)
}

func (e *env) get(c *cli.Context) error {
	target, err := requireArg(c, 0, "URL")
	if err != nil {
		return err
	}
	sess, err := e.newSession(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var resp *response.Response
	if raw := c.StringSlice("param"); len(raw) > 0 {
		p, perr := parseParams(raw)
		if perr != nil {
			return perr
		}
		resp, err = sess.GetWithParams(ctx, target, p)
	} else {
		resp, err = sess.Get(ctx, target)
	}
	if err != nil {
		return err
	}
	if err := e.render(c, resp); err != nil {
		return err
	}
	if c.Bool("cookies") {
		sess.PrintCookies(e.out)
	}
	return nil
}

func (e *env) post(c *cli.Context) error {
	target, err := requireArg(c, 0, "URL")
	if err != nil {
		return err
	}
	if c.IsSet("data") && len(c.StringSlice("param")) > 0 {
		return errors.New("--data and --param cannot be combined")
	}
	sess, err := e.newSession(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var resp *response.Response
	switch {
	case c.IsSet("data"):
		resp, err = sess.Post(ctx, target, c.String("data"))
	case len(c.StringSlice("param")) > 0:
		p, perr := parseParams(c.StringSlice("param"))
		if perr != nil {
			return perr
		}
		resp, err = sess.PostParams(ctx, target, p)
	default:
		resp, err = sess.PostEmpty(ctx, target)
	}
	if err != nil {
		return err
	}
	if err := e.render(c, resp); err != nil {
		return err
	}
	if c.Bool("cookies") {
		sess.PrintCookies(e.out)
	}
	return nil
}

func (e *env) encode(c *cli.Context) error {
	target, err := requireArg(c, 0, "URL")
	if err != nil {
		return err
	}
	encoded, err := urlutil.EncodeQueryURL(target)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, encoded)
	return nil
}

func (e *env) ocr(c *cli.Context) error {
	path, err := requireArg(c, 0, "IMAGE")
	if err != nil {
		return err
	}
	image, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	id, secret := e.cfg.OCR.ClientID, e.cfg.OCR.ClientSecret
	if c.IsSet("client-id") {
		id = c.String("client-id")
	}
	if c.IsSet("client-secret") {
		secret = c.String("client-secret")
	}
	if id == "" || secret == "" {
		return errors.New("OCR credentials missing: set --client-id and --client-secret")
	}

	ctx := context.Background()
	client, err := ocr.New(ctx, id, secret,
		ocr.WithTokenURL(e.cfg.OCR.TokenURL),
		ocr.WithGeneralURL(e.cfg.OCR.GeneralURL),
		ocr.WithLogger(e.logger.Logger),
	)
	if err != nil {
		return err
	}
	text, err := client.RecognizeText(ctx, image)
	if err != nil {
		return err
	}
	fmt.Fprint(e.out, text)
	return nil
}

func (e *env) js(c *cli.Context) error {
	source, err := requireArg(c, 0, "SOURCE")
	if err != nil {
		return err
	}
	name, err := requireArg(c, 1, "FUNCTION")
	if err != nil {
		return err
	}

	ctx := context.Background()
	engine := script.New(script.WithFS(e.fs), script.WithLogger(e.logger.Logger))
	if strings.Contains(source, "://") {
		err = engine.LoadURL(ctx, source)
	} else {
		err = engine.LoadFile(ctx, source)
	}
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, c.NArg()-2)
	for _, arg := range c.Args()[2:] {
		args = append(args, arg)
	}
	result, err := engine.Call(ctx, name, args...)
	if err != nil {
		return err
	}
	return e.printValue(result)
}

// render writes the response according to the output flags
func (e *env) render(c *cli.Context, resp *response.Response) error {
	if c.Bool("include") {
		fmt.Fprintf(e.out, "Status: %d\n", resp.StatusCode())
		resp.PrintHeaders(e.out)
		fmt.Fprintln(e.out)
	}

	if path := c.String("output"); path != "" {
		return resp.SaveTo(e.fs, path)
	}

	if expr := c.String("jq"); expr != "" {
		results, err := resp.Query(expr)
		if err != nil {
			return err
		}
		for _, v := range results {
			if err := e.printValue(v); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		text string
		err  error
	)
	if cs := c.String("charset"); cs != "" {
		text, err = resp.TextAs(cs)
	} else {
		text, err = resp.DecodedText()
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, text)
	return nil
}

// printValue prints strings raw and everything else as JSON
func (e *env) printValue(v interface{}) error {
	if s, ok := v.(string); ok {
		fmt.Fprintln(e.out, s)
		return nil
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(e.out, string(data))
	return nil
}

func requireArg(c *cli.Context, i int, name string) (string, error) {
	arg := c.Args().Get(i)
	if arg == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return arg, nil
}

func parseParams(raw []string) (*params.Params, error) {
	p := params.New()
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, failure.Newf(failure.Format, "cli.params", "parameter %q is not KEY=VALUE", kv)
		}
		p.Add(key, value)
	}
	return p, nil
}

func splitHeader(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", failure.Newf(failure.Format, "cli.headers", "header %q is not NAME: VALUE", raw)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}
