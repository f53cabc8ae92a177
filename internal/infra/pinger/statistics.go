package pinger

import (
	"slices"
	"sync"
	"time"
)

const (
	successWindow = 100
	errorWindow   = 10
)

// latencyWindow keeps the most recent latencies up to its capacity.
type latencyWindow struct {
	values []time.Duration
	next   int
	total  int
}

func newLatencyWindow(capacity int) *latencyWindow {
	return &latencyWindow{values: make([]time.Duration, 0, capacity)}
}

func (w *latencyWindow) add(d time.Duration) {
	w.total++

	if len(w.values) < cap(w.values) {
		w.values = append(w.values, d)

		return
	}

	w.values[w.next] = d
	w.next = (w.next + 1) % len(w.values)
}

// LatencySummary describes the latencies in a window.
type LatencySummary struct {
	Count  int           `json:"count"`
	Median time.Duration `json:"median"`
	P90    time.Duration `json:"p90"`
	Max    time.Duration `json:"max"`
}

func (w *latencyWindow) summary() LatencySummary {
	if len(w.values) == 0 {
		return LatencySummary{}
	}

	sorted := slices.Clone(w.values)
	slices.Sort(sorted)

	return LatencySummary{
		Count:  len(sorted),
		Median: percentile(sorted, 50),
		P90:    percentile(sorted, 90),
		Max:    sorted[len(sorted)-1],
	}
}

// percentile returns the nearest-rank percentile of sorted values.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	rank := (p*len(sorted) + 99) / 100
	rank = min(max(rank, 1), len(sorted))

	return sorted[rank-1]
}

// stats is the mutable ping history of one pinger.
type stats struct {
	mu        sync.Mutex
	lastRun   time.Time
	lastError error
	lastErrAt time.Time
	successes *latencyWindow
	failures  *latencyWindow
}

func newStats() *stats {
	return &stats{
		successes: newLatencyWindow(successWindow),
		failures:  newLatencyWindow(errorWindow),
	}
}

func (s *stats) record(at time.Time, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = at
	s.lastError = err

	if err != nil {
		s.lastErrAt = at
		s.failures.add(latency)

		return
	}

	s.successes.add(latency)
}

// Statistics is a snapshot of the ping history of one pinger.
type Statistics struct {
	IsReady      bool           `json:"ready"`
	IsHealthy    bool           `json:"healthy"`
	LastRun      time.Time      `json:"lastRun"`
	LastError    string         `json:"lastError,omitempty"`
	LastErrorAt  *time.Time     `json:"lastErrorAt,omitempty"`
	SuccessCount int            `json:"successCount"`
	ErrorCount   int            `json:"errorCount"`
	Latency      LatencySummary `json:"latency"`
}

func (s *stats) snapshot(p *probe) *Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &Statistics{
		IsReady:      !p.readyCritical || s.lastError == nil,
		IsHealthy:    !p.healthCritical || s.lastError == nil,
		LastRun:      s.lastRun,
		SuccessCount: s.successes.total,
		ErrorCount:   s.failures.total,
		Latency:      s.successes.summary(),
	}

	if s.lastError != nil {
		out.LastError = s.lastError.Error()
	}

	if !s.lastErrAt.IsZero() {
		at := s.lastErrAt
		out.LastErrorAt = &at
	}

	return out
}
