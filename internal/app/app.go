// Package app wires configuration, evaluation, metrics and rendering into
// the mpcalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/mpnum/internal/cli"
	"github.com/agbru/mpnum/internal/config"
	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/logging"
	"github.com/agbru/mpnum/internal/metrics"
	"github.com/agbru/mpnum/internal/mpcomplex"
	"github.com/agbru/mpnum/internal/mpreal"
	"github.com/agbru/mpnum/internal/ui"
)

const instrumentationName = "github.com/agbru/mpnum/internal/app"

// Application represents the mpcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the interactive session.
	In      io.Reader
	Logger  logging.Logger
	Metrics *metrics.DispatchMetrics
	Memory  *metrics.MemoryCollector

	tracer trace.Tracer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the logger receiving dispatch and evaluation records.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithTracerProvider sets the provider of the per-expression spans. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *Application) { a.tracer = tp.Tracer(instrumentationName) }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "mpcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:    config.ApplyAdaptiveJobs(cfg),
		ErrWriter: errWriter,
		In:        os.Stdin,
		Metrics:   metrics.NewDispatchMetrics(),
		Memory:    metrics.NewMemoryCollector(),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger(errWriter, cfg.NoColor)
	}
	if app.tracer == nil {
		app.tracer = otel.Tracer(instrumentationName)
	}
	return app, nil
}

// Run evaluates the configured expressions, then starts the interactive
// session if requested, and returns the process exit code. The timeout
// bounds the positional expressions as a whole and each interactive
// evaluation separately.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	restore := a.configureEngines()
	defer restore()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	exitCode := apperrors.ExitSuccess
	if len(a.Config.Exprs) > 0 {
		exitCode = a.runCalculate(ctx, out)
	}
	if a.Config.Interactive && exitCode != apperrors.ExitErrorTimeout && exitCode != apperrors.ExitErrorCanceled {
		return a.runREPL(ctx, out)
	}
	return exitCode
}

// runREPL starts the interactive session with the configured settings.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl, err := cli.NewREPL(cli.REPLConfig{
		Prec:    a.Config.Prec,
		Mode:    a.Config.Mode,
		Complex: a.Config.Complex,
		Timeout: a.Config.Timeout,
	}, a.In, out)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		return apperrors.ExitErrorConfig
	}
	if err := repl.Start(ctx); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitSuccess
		}
		a.Logger.Error("interactive session", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// configureEngines attaches the metrics recorder and the debug logger to the
// real and complex engines. The returned function restores plain engines.
func (a *Application) configureEngines() func() {
	var opts []dispatch.Option
	if a.Config.Metrics {
		opts = append(opts, dispatch.WithRecorder(a.Metrics))
	}
	if a.Config.Verbose {
		opts = append(opts, dispatch.WithLogger(a.Logger))
	}
	if len(opts) == 0 {
		return func() {}
	}
	mpreal.Configure(opts...)
	mpcomplex.Configure(opts...)
	return func() {
		mpreal.Configure()
		mpcomplex.Configure()
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
