package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restclient/version"
)

// InstrumentationName identifies this module's tracer and meter.
const InstrumentationName = "github.com/kbukum/restclient"

// Span and metric names.
const (
	SpanRESTCall       = "rest.call"
	MetricCallTotal    = "rest.client.calls"
	MetricCallDuration = "rest.client.duration"
)

// Attribute keys.
const (
	AttrResource   = "rest.resource"
	AttrMethod     = "http.request.method"
	AttrURL        = "url.full"
	AttrStatusCode = "http.response.status_code"
	AttrOutcome    = "rest.outcome"
)

// Call outcomes recorded on spans and metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Instruments holds the tracer, propagator and metric instruments.
type Instruments struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	calls      metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewInstruments creates instruments from the given providers. Nil
// providers fall back to the otel globals.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(version.Get().Version))

	calls, err := meter.Int64Counter(MetricCallTotal,
		metric.WithDescription("Number of REST calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCallTotal, err)
	}

	duration, err := meter.Float64Histogram(MetricCallDuration,
		metric.WithDescription("Duration of REST calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCallDuration, err)
	}

	return &Instruments{
		tracer:     tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(version.Get().Version)),
		propagator: otel.GetTextMapPropagator(),
		calls:      calls,
		duration:   duration,
	}, nil
}

// WithPropagator replaces the propagator used by Inject.
func (i *Instruments) WithPropagator(p propagation.TextMapPropagator) *Instruments {
	i.propagator = p
	return i
}

// StartCall starts a client span for one REST call.
func (i *Instruments) StartCall(ctx context.Context, resource, method, url string) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, SpanRESTCall,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrResource, resource),
			attribute.String(AttrMethod, method),
			attribute.String(AttrURL, url),
		),
	)
}

// Inject writes the trace context of ctx into header.
func (i *Instruments) Inject(ctx context.Context, header http.Header) {
	i.propagator.Inject(ctx, propagation.HeaderCarrier(header))
}

// RecordCall annotates span with the result and records the call metrics.
// statusCode is 0 when no response was received.
func (i *Instruments) RecordCall(ctx context.Context, span trace.Span, resource, method string, statusCode int, err error, d time.Duration) {
	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeError
	case statusCode == http.StatusNotFound:
		outcome = OutcomeNotFound
	}

	if statusCode > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs := metric.WithAttributes(
		attribute.String(AttrResource, resource),
		attribute.String(AttrMethod, method),
		attribute.String(AttrOutcome, outcome),
	)
	i.calls.Add(ctx, 1, attrs)
	i.duration.Record(ctx, d.Seconds(), attrs)
}
