// Package telemetry wires OpenTelemetry tracing and metrics. Without a
// configured OTLP endpoint everything stays a no-op, so instrumented
// code paths never need to check whether telemetry is on.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
)

const serviceName = "d8-ideas"

// Pipeline instruments, registered against the global meter provider.
// They no-op until Init installs a real provider.
var (
	Tracer trace.Tracer

	PipelineRequests metric.Int64Counter
	CacheHits        metric.Int64Counter
	FallbackSets     metric.Int64Counter
	ImagesEnriched   metric.Int64Counter
)

func init() {
	Tracer = otel.Tracer(serviceName)
	meter := otel.Meter(serviceName)

	PipelineRequests, _ = meter.Int64Counter("d8_pipeline_requests_total",
		metric.WithDescription("Idea pipeline invocations"))
	CacheHits, _ = meter.Int64Counter("d8_idea_cache_hits_total",
		metric.WithDescription("Idea sets served from the cache"))
	FallbackSets, _ = meter.Int64Counter("d8_fallback_sets_total",
		metric.WithDescription("Idea sets synthesized locally after a recommender failure"))
	ImagesEnriched, _ = meter.Int64Counter("d8_images_enriched_total",
		metric.WithDescription("Ideas that received a photo URL"))
}

// Init installs OTLP HTTP exporters when an endpoint is configured and
// returns a shutdown function. With an empty endpoint it returns a
// no-op shutdown and leaves the global no-op providers in place.
func Init(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	log := logger.GetLogger("telemetry")

	if endpoint == "" {
		log.Info("no OTLP endpoint configured, telemetry disabled")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceInstanceID(uuid.NewString()),
		))
	if err != nil {
		return nil, err
	}

	traceExp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricExp, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp,
			sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Re-bind instruments to the installed provider
	Tracer = otel.Tracer(serviceName)
	meter := otel.Meter(serviceName)
	PipelineRequests, _ = meter.Int64Counter("d8_pipeline_requests_total")
	CacheHits, _ = meter.Int64Counter("d8_idea_cache_hits_total")
	FallbackSets, _ = meter.Int64Counter("d8_fallback_sets_total")
	ImagesEnriched, _ = meter.Int64Counter("d8_images_enriched_total")

	log.Infof("telemetry exporting to %s", endpoint)

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}
