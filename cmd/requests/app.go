package main

import (
	"fmt"
	"io"

	"github.com/GriffinCanCode/requests/internal/config"
	"github.com/GriffinCanCode/requests/internal/logging"
	"github.com/GriffinCanCode/requests/internal/monitoring"
	"github.com/GriffinCanCode/requests/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// env is the state shared by every command of one run
type env struct {
	out     io.Writer
	fs      afero.Fs
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "log-level",
		Usage:  "log level: debug, info, warn, error",
		EnvVar: "LOG_LEVEL",
	},
	cli.BoolFlag{
		Name:   "dev",
		Usage:  "human readable console logs",
		EnvVar: "LOG_DEV",
	},
	cli.StringFlag{
		Name:   "log-file",
		Usage:  "also write JSON logs to a rotating `FILE`",
		EnvVar: "LOG_FILE",
	},
	cli.StringFlag{
		Name:   "headers-file",
		Usage:  "YAML `FILE` of default request headers",
		EnvVar: "REQUESTS_HEADERS_FILE",
	},
	cli.StringFlag{
		Name:   "user-agent",
		Usage:  "User-Agent sent when no header sets one",
		EnvVar: "REQUESTS_USER_AGENT",
	},
	cli.BoolFlag{
		Name:  "no-redirects",
		Usage: "return 3xx responses instead of following them",
	},
	cli.BoolFlag{
		Name:  "stats",
		Usage: "print request totals to stderr on exit",
	},
}

func newApp(out io.Writer, fs afero.Fs) *cli.App {
	e := &env{out: out, fs: fs}

	app := cli.NewApp()
	app.Name = "requests"
	app.HelpName = "requests"
	app.Usage = "send HTTP requests with persistent headers and cookies"
	app.UsageText = "requests [global options] <command> [arguments...]"
	app.Writer = out
	app.Flags = globalFlags
	app.Before = e.setup
	app.After = e.teardown
	app.Commands = []cli.Command{
		{
			Name:      "get",
			Usage:     "send a GET request",
			ArgsUsage: "URL",
			Flags:     requestFlags(paramFlag),
			Action:    e.get,
		},
		{
			Name:      "post",
			Usage:     "send a POST request",
			ArgsUsage: "URL",
			Flags:     requestFlags(paramFlag, dataFlag),
			Action:    e.post,
		},
		{
			Name:      "encode",
			Usage:     "percent-encode a URL path and query",
			ArgsUsage: "URL",
			Action:    e.encode,
		},
		{
			Name:      "ocr",
			Usage:     "recognize text in an image file",
			ArgsUsage: "IMAGE",
			Flags:     ocrFlags,
			Action:    e.ocr,
		},
		{
			Name:      "js",
			Usage:     "load a script file or URL and call one of its functions",
			ArgsUsage: "SOURCE FUNCTION [ARGS...]",
			Action:    e.js,
		},
	}
	return app
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("dev") {
		cfg.Logging.Development = c.Bool("dev")
	}
	if c.IsSet("log-file") {
		cfg.Logging.File = c.String("log-file")
	}
	if c.IsSet("headers-file") {
		cfg.Client.HeadersFile = c.String("headers-file")
	}
	if c.IsSet("user-agent") {
		cfg.Client.UserAgent = c.String("user-agent")
	}
	if c.Bool("no-redirects") {
		cfg.Client.FollowRedirects = false
	}

	logger, err := logging.New(cfg.Logging.Logger())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	e.cfg = cfg
	e.logger = logger
	e.metrics = monitoring.NewMetrics(prometheus.NewRegistry())
	return nil
}

func (e *env) teardown(c *cli.Context) error {
	if e.logger == nil {
		return nil
	}
	if c.Bool("stats") {
		snap := e.metrics.Snapshot()
		e.logger.Info("request totals",
			zap.Int64("requests", snap.TotalRequests),
			zap.Int64("errors", snap.TotalErrors),
			zap.Int64("bytes", snap.TotalBytes),
			zap.Int64("cookies", snap.CookiesReceived),
			zap.Duration("avg_duration", snap.AverageDuration()),
		)
	}
	return e.logger.Close()
}

// newSession builds a session from configuration, the optional header file
// and any --header flags.
func (e *env) newSession(c *cli.Context) (*session.Session, error) {
	opts := []session.Option{
		session.WithTransport(e.cfg.Client.Transport()),
		session.WithLogger(e.logger.Logger),
		session.WithMetrics(e.metrics),
	}

	headers := session.NewHeaders()
	if path := e.cfg.Client.HeadersFile; path != "" {
		pairs, err := config.LoadHeaderFile(e.fs, path)
		if err != nil {
			return nil, err
		}
		if headers, err = session.HeadersFromPairs(pairs); err != nil {
			return nil, err
		}
	}
	for _, raw := range c.StringSlice("header") {
		name, value, err := splitHeader(raw)
		if err != nil {
			return nil, err
		}
		headers.Set(name, value)
	}

	sess, err := session.NewWithHeaders(headers, opts...)
	if err != nil {
		return nil, err
	}
	for _, cookie := range c.StringSlice("cookie") {
		if err := sess.AddCookies(cookie); err != nil {
			return nil, err
		}
	}
	return sess, nil
}
