package btvo

import (
	"runtime"
	"sync"
	"time"
)

// Metrics collects btvo-specific operational metrics.
type Metrics struct {
	mu               sync.Mutex
	ScriptSubmits    int64            `json:"script_submissions"`
	ActiveJobs       int64            `json:"active_jobs"`
	LinesSynthesized int64            `json:"lines_synthesized"`
	FilesGenerated   int64            `json:"files_generated"`
	LineFailures     map[string]int64 `json:"line_failures"`
	FilesCleared     int64            `json:"files_cleared"`
	StartedAt        time.Time        `json:"-"`
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		LineFailures: make(map[string]int64),
		StartedAt:    time.Now(),
	}
}

// RecordScriptSubmit increments the submission counter and active jobs.
func (m *Metrics) RecordScriptSubmit() {
	m.mu.Lock()
	m.ScriptSubmits++
	m.ActiveJobs++
	m.mu.Unlock()
}

// RecordJobComplete decrements active jobs.
func (m *Metrics) RecordJobComplete() {
	m.mu.Lock()
	if m.ActiveJobs > 0 {
		m.ActiveJobs--
	}
	m.mu.Unlock()
}

// RecordLineGenerated counts a synthesized line and its output file.
func (m *Metrics) RecordLineGenerated() {
	m.mu.Lock()
	m.LinesSynthesized++
	m.FilesGenerated++
	m.mu.Unlock()
}

// RecordLineFailure counts a failed line by reason.
func (m *Metrics) RecordLineFailure(reason LineStatus) {
	m.mu.Lock()
	m.LineFailures[string(reason)]++
	m.mu.Unlock()
}

// RecordFilesCleared counts files removed by a clear operation.
func (m *Metrics) RecordFilesCleared(n int) {
	m.mu.Lock()
	m.FilesCleared += int64(n)
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time metrics report.
type MetricsSnapshot struct {
	ScriptSubmits    int64            `json:"script_submissions"`
	ActiveJobs       int64            `json:"active_jobs"`
	LinesSynthesized int64            `json:"lines_synthesized"`
	FilesGenerated   int64            `json:"files_generated"`
	LineFailures     map[string]int64 `json:"line_failures"`
	FilesCleared     int64            `json:"files_cleared"`
	UptimeSeconds    int              `json:"uptime_seconds"`
	Goroutines       int              `json:"goroutines"`
	HeapAllocMB      float64          `json:"heap_alloc_mb"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	failures := make(map[string]int64, len(m.LineFailures))
	for k, v := range m.LineFailures {
		failures[k] = v
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return MetricsSnapshot{
		ScriptSubmits:    m.ScriptSubmits,
		ActiveJobs:       m.ActiveJobs,
		LinesSynthesized: m.LinesSynthesized,
		FilesGenerated:   m.FilesGenerated,
		LineFailures:     failures,
		FilesCleared:     m.FilesCleared,
		UptimeSeconds:    int(time.Since(m.StartedAt).Seconds()),
		Goroutines:       runtime.NumGoroutine(),
		HeapAllocMB:      float64(memStats.HeapAlloc) / (1024 * 1024),
	}
}
