package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/restclient/observability"
)

func TestClient_TracesCalls(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})
	inst, err := observability.NewInstruments(tp, mp)
	if err != nil {
		t.Fatalf("NewInstruments failed: %v", err)
	}
	inst.WithPropagator(propagation.TraceContext{})

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("Traceparent")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithInstruments(inst))
	got, err := c.Execute(context.Background(), MethodGet, "/missing")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %v, %v", got, err)
	}

	if traceparent == "" {
		t.Error("expected trace context to be propagated")
	}
	spans := exp.GetSpans()
	if len(spans) != 1 || spans[0].Name != observability.SpanRESTCall {
		t.Fatalf("expected one %s span, got %d", observability.SpanRESTCall, len(spans))
	}
	var outcome string
	for _, kv := range spans[0].Attributes {
		if string(kv.Key) == observability.AttrOutcome {
			outcome = kv.Value.AsString()
		}
	}
	if outcome != observability.OutcomeNotFound {
		t.Errorf("expected outcome %q, got %q", observability.OutcomeNotFound, outcome)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == observability.MetricCallTotal {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected %s metric", observability.MetricCallTotal)
	}
}
