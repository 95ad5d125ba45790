package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	staleDiscards   int
	lastCallLatency time.Duration
}

// Recorder keeps per-source fetch stats in memory and mirrors them to OpenTelemetry when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*sourceStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordFetchAttempt counts one document fetch for a source and stores its latency.
func (r *Recorder) RecordFetchAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(source, duration, err)
	}
}

// RecordStaleDiscard counts a fetch completion dropped because a newer fetch had been issued.
func (r *Recorder) RecordStaleDiscard(source string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStatsLocked(source).staleDiscards++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStaleDiscard(source)
	}
}

// Snapshot is a copy of the stats recorded for one source.
type Snapshot struct {
	Calls           int
	Errors          int
	StaleDiscards   int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		StaleDiscards:   stats.staleDiscards,
		LastCallLatency: stats.lastCallLatency,
	}
}

// FetchCalls returns the total fetches recorded for a source.
func (r *Recorder) FetchCalls(source string) int {
	return r.Snapshot(source).Calls
}

// FetchErrors returns the failed fetches recorded for a source.
func (r *Recorder) FetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// StaleDiscards returns how many completions were dropped for a source.
func (r *Recorder) StaleDiscards(source string) int {
	return r.Snapshot(source).StaleDiscards
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStatsLocked(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
