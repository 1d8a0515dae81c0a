// Package metrics wires the OpenTelemetry meter provider to a Prometheus
// registry and records distribution metrics.
package metrics

import (
	"context"
	"fmt"
	"targets/pkg/domain"
	"targets/pkg/serrors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// MonthBuckets are histogram boundaries for the number of months per distribution.
var MonthBuckets = []float64{1, 3, 6, 12, 24, 60, 120, 600, 1200} //nolint: gochecknoglobals

// MeterName is the instrumentation scope of the application's meters.
const MeterName = "targets"

// NewMeterProvider creates a meter provider exporting to the given Prometheus registerer.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Recorder records the outcome of distribution calls. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	calls    metric.Int64Counter
	months   metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewRecorder creates the distribution instruments on the given meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	calls, err := meter.Int64Counter("distributions",
		metric.WithDescription("Number of distribution calls by mode and outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create distributions counter: %w", err)
	}
	months, err := meter.Int64Histogram("distribution.months",
		metric.WithDescription("Number of months per successful distribution."),
		metric.WithExplicitBucketBoundaries(MonthBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create months histogram: %w", err)
	}
	duration, err := meter.Float64Histogram("distribution.duration",
		metric.WithDescription("Time spent computing a distribution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return &Recorder{calls: calls, months: months, duration: duration}, nil
}

// Observe records one distribution call. The outcome attribute is "ok" for a
// nil error and the error kind otherwise.
func (r *Recorder) Observe(ctx context.Context, mode domain.Mode, months int, elapsed time.Duration, err error) {
	if r == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = serrors.KindOf(err).Error()
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", outcome),
	)

	r.calls.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
	if err == nil {
		r.months.Record(ctx, int64(months), metric.WithAttributes(attribute.String("mode", string(mode))))
	}
}
