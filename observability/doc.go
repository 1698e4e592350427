// Package observability provides the OpenTelemetry instruments recorded
// around every outbound REST call: a client span, W3C trace-context header
// injection, a call counter and a duration histogram.
//
// Instruments default to the global otel providers, so a process that has
// installed an SDK tracer/meter provider gets telemetry without wiring:
//
//	inst, err := observability.NewInstruments(nil, nil)
//	ctx, span := inst.StartCall(ctx, "users", http.MethodGet, url)
//	defer span.End()
package observability
