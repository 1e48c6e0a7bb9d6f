// Package telemetry wires OpenTelemetry metrics for salesboard.
//
// Telemetry is off by default and installs a no-op meter provider, so
// instruments created through Meter cost nothing. When enabled with
// Stdout set, metrics are printed periodically by the stdout exporter.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const instrumentationScope = "github.com/thenoetrevino/salesboard"

// Settings mirrors the telemetry section of the config file
type Settings struct {
	Enabled  bool
	Stdout   bool
	Interval time.Duration
}

var (
	mu          sync.Mutex
	shutdownFns []func(context.Context) error
)

// Init installs the global meter provider described by s
func Init(s Settings) error {
	mu.Lock()
	defer mu.Unlock()

	if !s.Enabled {
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return nil
	}

	interval := s.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	var opts []sdkmetric.Option
	if s.Stdout {
		exp, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("telemetry: stdout exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval)),
		))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	shutdownFns = append(shutdownFns, mp.Shutdown)
	return nil
}

// Meter returns a meter with the given instrumentation name (or the global scope)
func Meter(name string) metric.Meter {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Meter(name)
}

// Shutdown flushes pending metrics and releases the providers
func Shutdown(ctx context.Context) {
	mu.Lock()
	fns := shutdownFns
	shutdownFns = nil
	mu.Unlock()

	for _, fn := range fns {
		_ = fn(ctx)
	}
}
