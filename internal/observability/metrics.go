package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/parking-service/internal/domain"
)

// Metrics provides basic in-memory counters for requests and lifecycle events.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	entryCount   map[domain.VehicleType]int64
	exitCount    map[domain.VehicleType]int64
	fareTotal    float64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		entryCount:   make(map[domain.VehicleType]int64),
		exitCount:    make(map[domain.VehicleType]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordEntry counts a completed vehicle entry.
func (m *Metrics) RecordEntry(vehicleType domain.VehicleType) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entryCount[vehicleType]++
}

// RecordExit counts a completed exit and accumulates collected fares.
func (m *Metrics) RecordExit(vehicleType domain.VehicleType, fare float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exitCount[vehicleType]++
	m.fareTotal += fare
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
