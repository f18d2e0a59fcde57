package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"pricetrack/lib/configutil"

	"go.opentelemetry.io/otel"
)

// InitSlog installs the default text logger. Verbose mode drops the
// level to debug, which also turns on per-request HTTP logging in
// lib/restyutil.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// SetupFromEnv searches up the filesystem from the cwd to find a file
// called telemetry.json5, and uses it to set up OTLP export. The tool
// is expected to run on machines with no collector at all, so a
// missing config is not an error: spans and metrics simply stay on
// the no-op globals.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	config, err := configutil.ReadRecursively[config]("telemetry.json5")
	if os.IsNotExist(err) {
		slog.Debug("no telemetry.json5 found, otlp export disabled")
		return nil
	}
	if err != nil {
		return err
	}
	return setup(ctx, serviceName, config)
}

// setup installs OTLP-exporting tracer and meter providers as the
// otel globals.
func setup(ctx context.Context, serviceName string, config config) error {
	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)

	return nil
}

var shutdownFuncs []func(context.Context) error

// Shutdown flushes and stops whatever providers SetupFromEnv
// installed.
func Shutdown(ctx context.Context) error {
	var errlist []error
	for _, shutdown := range shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			errlist = append(errlist, err)
		}
	}
	shutdownFuncs = nil
	return errors.Join(errlist...)
}
