package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Engine health
	MetricEngineLatency  = "engine.request_latency"
	MetricTilesetAge     = "engine.tileset_age_seconds"
	MetricEngineRejected = "engine.rejected_requests"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricRoutesPlanned = "business.routes_planned"
	MetricCacheHitRate  = "business.route_cache_hit_rate"
)
