package foodpath

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	TracerNameServer = "foodpath-server"
	TracerNameLambda = "foodpath-lambda"
)

// OtelConfig is a configuration struct for the OpenTelemetry providers.
type OtelConfig struct {
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=set-me"`
	Headers        string `env:"OTEL_EXPORTER_OTLP_HEADERS,default=set-me"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION,default=0.1.0"`
	ServiceName    string `env:"OTEL_SERVICE_NAME,default=foodpath"`
	DeployEnv      string `env:"OTEL_DEPLOY_ENV,default=development"`
}

type otelShutdown func(ctx context.Context) error

// Telemetry bundles the tracer and meter handed to the server and tools.
type Telemetry struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Shutdown otelShutdown
}

// NoopTelemetry returns providers that discard everything.
func NoopTelemetry(name string) Telemetry {
	return Telemetry{
		Tracer:   tracenoop.NewTracerProvider().Tracer(name),
		Meter:    metricnoop.NewMeterProvider().Meter(name),
		Shutdown: func(context.Context) error { return nil },
	}
}

// InitTelemetry sets up OTLP exporters when enabled, noop providers otherwise.
func InitTelemetry(ctx context.Context, enabled bool, name string) (Telemetry, error) {
	if !enabled {
		return NoopTelemetry(name), nil
	}

	tp, mp, shutdown, err := InitOtel(ctx)
	if err != nil {
		return Telemetry{}, err
	}
	return Telemetry{
		Tracer:   tp.Tracer(name),
		Meter:    mp.Meter(name),
		Shutdown: shutdown,
	}, nil
}

// InitOtel initializes the OpenTelemetry SDK and returns a TracerProvider, MeterProvider, and shutdown function.
func InitOtel(ctx context.Context) (*sdktrace.TracerProvider, *sdkmetric.MeterProvider, otelShutdown, error) {
	var cfg OtelConfig
	if err := Decode(&cfg); err != nil {
		return nil, nil, nil, err
	}

	// OTLP exporters read their endpoint and headers from the environment
	traceExporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
	if err != nil {
		return nil, nil, nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		err := errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)

		if err != nil && err.Error() == "gRPC exporter is shutdown" {
			return nil
		}

		return err
	}

	return tracerProvider, meterProvider, shutdown, nil
}
