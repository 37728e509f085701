package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

// OperationStats summarizes the recorded latencies for one operation.
type OperationStats struct {
	Count      int           `json:"count"`
	AvgLatency time.Duration `json:"avgLatencyNs"`
}

// MetricsSnapshot is the point-in-time view reported on /health.
type MetricsSnapshot struct {
	RequestCount uint64                    `json:"requestCount"`
	ErrorCount   uint64                    `json:"errorCount"`
	Uptime       time.Duration             `json:"uptimeNs"`
	Operations   map[string]OperationStats `json:"operations"`
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

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// Snapshot returns the current counters and per-operation averages.
func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	ops := make(map[string]OperationStats, len(mc.operationTimes))
	for name, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total int64
		for _, ns := range samples {
			total += ns
		}
		ops[name] = OperationStats{
			Count:      len(samples),
			AvgLatency: time.Duration(total / int64(len(samples))),
		}
	}

	return MetricsSnapshot{
		RequestCount: mc.requestCount,
		ErrorCount:   mc.errorCount,
		Uptime:       time.Since(mc.systemStartTime),
		Operations:   ops,
	}
}
