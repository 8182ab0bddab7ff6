package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// AI operation metrics
	AICalls    *prometheus.CounterVec
	AIDuration *prometheus.HistogramVec
	AIErrors   *prometheus.CounterVec

	// Result cache metrics
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheEvictions prometheus.Counter

	// Session persistence metrics
	AutosavesTotal   prometheus.Counter
	AutosaveFailures prometheus.Counter
	SessionsRestored prometheus.Counter

	// Prompt state metrics
	SegmentsActive prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSBroadcasts  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON stats endpoint
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	Autosaves     int64   `json:"autosaves"`
	TotalDuration float64 `json:"-"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptdeck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptdeck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		AICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptdeck_ai_calls_total",
				Help: "Total number of AI operations",
			},
			[]string{"operation", "status"},
		),
		AIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptdeck_ai_duration_seconds",
				Help:    "AI operation duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		AIErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptdeck_ai_errors_total",
				Help: "Total number of AI operation errors",
			},
			[]string{"operation", "kind"},
		),

		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_cache_hits_total",
				Help: "Total number of result cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),
		CacheEvictions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_cache_evictions_total",
				Help: "Total number of result cache evictions",
			},
		),

		AutosavesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_autosaves_total",
				Help: "Total number of session autosaves",
			},
		),
		AutosaveFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_autosave_failures_total",
				Help: "Total number of failed session autosaves",
			},
		),
		SessionsRestored: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_sessions_restored_total",
				Help: "Total number of sessions restored",
			},
		),

		SegmentsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "promptdeck_segments_active",
				Help: "Number of segments in the current session",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "promptdeck_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSBroadcasts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promptdeck_ws_broadcasts_total",
				Help: "Total number of state broadcasts",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "promptdeck_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordAICall records a completed AI operation
func (m *Metrics) RecordAICall(operation, status string, duration time.Duration) {
	m.AICalls.WithLabelValues(operation, status).Inc()
	m.AIDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAIError records an AI operation error by kind
func (m *Metrics) RecordAIError(operation, kind string) {
	m.AIErrors.WithLabelValues(operation, kind).Inc()
}

// RecordCacheHit records a result cache hit
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
	m.mu.Lock()
	m.snapshot.CacheHits++
	m.mu.Unlock()
}

// RecordCacheMiss records a result cache miss
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
	m.mu.Lock()
	m.snapshot.CacheMisses++
	m.mu.Unlock()
}

// RecordCacheEviction records a result cache eviction
func (m *Metrics) RecordCacheEviction() {
	m.CacheEvictions.Inc()
}

// RecordAutosave records an autosave attempt
func (m *Metrics) RecordAutosave(ok bool) {
	m.AutosavesTotal.Inc()
	if !ok {
		m.AutosaveFailures.Inc()
	}
	m.mu.Lock()
	m.snapshot.Autosaves++
	m.mu.Unlock()
}

// IncSessionsRestored increments the sessions restored counter
func (m *Metrics) IncSessionsRestored() {
	m.SessionsRestored.Inc()
}

// SetSegmentsActive sets the current segment count
func (m *Metrics) SetSegmentsActive(count int) {
	m.SegmentsActive.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// IncWSBroadcasts increments the broadcast counter
func (m *Metrics) IncWSBroadcasts() {
	m.WSBroadcasts.Inc()
}

// GetSnapshot returns current values for the JSON stats endpoint
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.TotalRequests > 0 {
		snap.AvgDurationMS = snap.TotalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
