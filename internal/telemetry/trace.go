//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package telemetry provides the tracer the graph runtime and compiler use
// to instrument cooking and compile calls. Until Install is called it uses
// whatever provider is registered with go.opentelemetry.io/otel's global
// registration (a no-op by default); Install registers an in-process
// provider that records spans without exporting them anywhere.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceName identifies this module's spans to whatever backend a host
	// process configures via otel's global TracerProvider.
	ServiceName = "flowlang"
	// InstrumentationName scopes the tracer within ServiceName.
	InstrumentationName = "github.com/flowlang-dev/flowlang"
)

// Tracer is the package-wide tracer used by the executor and compiler to
// start spans. It is bound once at init time to whatever TracerProvider is
// globally registered (otel.GetTracerProvider), matching the teacher's
// pattern of a package-level Tracer variable resolved once at start-up.
var Tracer trace.Tracer = otel.Tracer(InstrumentationName)

// Install registers an in-process sdktrace.TracerProvider as the global
// provider and rebinds Tracer to it. Call this once at process start-up
// (e.g. cmd/flowc's main) before any cooking or compile call if span data
// should be recorded at all; the zero-value global provider otel ships with
// is a no-op and drops every span.
func Install() (shutdown func() error) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(InstrumentationName)
	return func() error { return tp.Shutdown(context.Background()) }
}
