// Package metrics defines the Recorder abstraction for build observability
// and its Prometheus-backed implementation. The default NoopRecorder keeps
// instrumentation optional for callers that do not configure metrics.
package metrics
