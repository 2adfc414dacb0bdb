package utils

import (
	"sync"
	"time"
)

// MetricsCollector tracks request and operation latencies across the system.
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// Snapshot returns request totals, per-operation average latencies in
// milliseconds, and the uptime.
func (mc *MetricsCollector) Snapshot() (uint64, uint64, map[string]float64, time.Duration) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	averages := make(map[string]float64, len(mc.operationTimes))
	for op, times := range mc.operationTimes {
		if len(times) == 0 {
			continue
		}
		var total int64
		for _, t := range times {
			total += t
		}
		averages[op] = float64(total) / float64(len(times)) / float64(time.Millisecond)
	}

	return mc.requestCount, mc.errorCount, averages, time.Since(mc.systemStartTime)
}
