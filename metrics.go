package flatfa

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordOpen is called after each Open. reused reports whether the
	// cached sidecars were used without a rebuild.
	RecordOpen(reused bool, duration time.Duration, err error)

	// RecordFetch is called after each read of sequence bytes from the
	// backend. bytes is the number of bytes returned.
	RecordFetch(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(bool, time.Duration, error)  {}
func (NoopMetricsCollector) RecordFetch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
	OpenReused      atomic.Int64
	OpenTotalNanos  atomic.Int64
	FetchCount      atomic.Int64
	FetchErrors     atomic.Int64
	FetchBytes      atomic.Int64
	FetchTotalNanos atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(reused bool, duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	if reused {
		b.OpenReused.Add(1)
	}
}

// RecordFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFetch(bytes int, duration time.Duration, err error) {
	b.FetchCount.Add(1)
	b.FetchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FetchErrors.Add(1)
		return
	}
	b.FetchBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:     b.OpenCount.Load(),
		OpenErrors:    b.OpenErrors.Load(),
		OpenReused:    b.OpenReused.Load(),
		OpenAvgNanos:  avg(b.OpenTotalNanos.Load(), b.OpenCount.Load()),
		FetchCount:    b.FetchCount.Load(),
		FetchErrors:   b.FetchErrors.Load(),
		FetchBytes:    b.FetchBytes.Load(),
		FetchAvgNanos: avg(b.FetchTotalNanos.Load(), b.FetchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount     int64
	OpenErrors    int64
	OpenReused    int64
	OpenAvgNanos  int64
	FetchCount    int64
	FetchErrors   int64
	FetchBytes    int64
	FetchAvgNanos int64
}
