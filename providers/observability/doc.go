// Package observability defines the tracing, metrics and structured logging
// interfaces used by flowcanvas nodes, providers and the HTTP server.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into one injectable
// dependency. The active [Span] travels through a [context.Context] with
// [ContextWithSpan] so that lower layers (HTTP helpers, providers) can attach
// events without knowing who opened the span. [Nop] returns a provider that
// discards everything and is used wherever a caller passes nil.
//
// semconv.go lists the attribute keys and span/metric names shared by all
// components.
package observability
