// Package otel provides an OpenTelemetry observer plugin for the tasklocal
// library. It emits span events (scope entry/exit, poll, take, rejection)
// with low overhead.
package otel
