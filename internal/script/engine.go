package script

import (
	"context"
	"strings"
	"sync"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/GriffinCanCode/requests/internal/urlutil"
	"github.com/dop251/goja"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Engine evaluates JavaScript sources into one shared global scope and
// calls the functions they define.
type Engine struct {
	vm  *goja.Runtime
	fs  afero.Fs
	log *zap.Logger
	mu  sync.Mutex
}

// Option configures an Engine
type Option func(*Engine)

// WithFS sets the filesystem LoadFile reads from
func WithFS(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithLogger receives console output from scripts
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine with an empty global scope
func New(opts ...Option) *Engine {
	e := &Engine{
		vm:  goja.New(),
		fs:  afero.NewOsFs(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.setupGlobals()
	return e
}

// Load evaluates source
func (e *Engine) Load(ctx context.Context, source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.run(ctx, func() (goja.Value, error) {
		return e.vm.RunString(source)
	})
	if err != nil {
		return e.wrap(ctx, "script.load", err)
	}
	return nil
}

// LoadURL fetches source with a bare GET and evaluates it
func (e *Engine) LoadURL(ctx context.Context, target string) error {
	resp, err := urlutil.Get(ctx, target)
	if err != nil {
		return failure.Wrapf(failure.Script, "script.load_url", err, "fetch %s", target)
	}
	if resp.StatusCode() >= 400 {
		return failure.Newf(failure.Script, "script.load_url", "fetch %s: status %d", target, resp.StatusCode())
	}
	return e.Load(ctx, resp.Text())
}

// LoadFile reads a UTF-8 source file and evaluates it
func (e *Engine) LoadFile(ctx context.Context, path string) error {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return failure.New(failure.Script, "script.load_file", err)
	}
	return e.Load(ctx, strings.TrimSuffix(string(data), "\n"))
}

// Call invokes the global function name with args and returns its exported
// result. undefined and null become nil.
func (e *Engine) Call(ctx context.Context, name string, args ...interface{}) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, ok := goja.AssertFunction(e.vm.Get(name))
	if !ok {
		return nil, failure.Newf(failure.Script, "script.call", "%s is not a function", name)
	}

	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = e.vm.ToValue(arg)
	}

	val, err := e.run(ctx, func() (goja.Value, error) {
		return fn(goja.Undefined(), values...)
	})
	if err != nil {
		return nil, e.wrap(ctx, "script.call", err)
	}
	return exportValue(val), nil
}

// run executes fn and interrupts the VM if ctx ends first
func (e *Engine) run(ctx context.Context, fn func() (goja.Value, error)) (goja.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			e.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	val, err := fn()
	close(done)
	wg.Wait()
	e.vm.ClearInterrupt()
	return val, err
}

func (e *Engine) wrap(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return failure.Wrapf(failure.Script, op, ctxErr, "interrupted")
	}
	return failure.New(failure.Script, op, err)
}

// setupGlobals removes host hooks and routes console output to the logger
func (e *Engine) setupGlobals() {
	e.vm.Set("require", goja.Undefined())
	e.vm.Set("process", goja.Undefined())
	e.vm.Set("module", goja.Undefined())
	e.vm.Set("exports", goja.Undefined())

	console := e.vm.NewObject()
	_ = console.Set("log", e.consoleFunc(zap.DebugLevel))
	_ = console.Set("info", e.consoleFunc(zap.InfoLevel))
	_ = console.Set("warn", e.consoleFunc(zap.WarnLevel))
	_ = console.Set("error", e.consoleFunc(zap.ErrorLevel))
	e.vm.Set("console", console)
}

func (e *Engine) consoleFunc(level zapcore.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		if ce := e.log.Check(level, "script console"); ce != nil {
			ce.Write(zap.String("message", strings.Join(parts, " ")))
		}
		return goja.Undefined()
	}
}

func exportValue(val goja.Value) interface{} {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
