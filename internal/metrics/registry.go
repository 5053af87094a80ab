package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Default is the default metrics instance
	Default *Metrics
	once    sync.Once

	defaultRegistry *prometheus.Registry
)

// InitDefault initializes the default metrics instance on its own registry.
// This should be called once at application startup
func InitDefault() *Metrics {
	once.Do(func() {
		defaultRegistry, Default = NewRegistry()
	})
	return Default
}

// GetDefault returns the default metrics instance
// If not initialized, it will initialize it first
func GetDefault() *Metrics {
	if Default == nil {
		return InitDefault()
	}
	return Default
}

// NewRegistry creates a new Prometheus registry with metrics
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	return reg, m
}

// WriteFile writes the metrics gathered by reg in the Prometheus text
// format, for the node exporter textfile collector
func WriteFile(reg prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, reg)
}

// WriteDefault writes the default registry to path
func WriteDefault(path string) error {
	InitDefault()
	return WriteFile(defaultRegistry, path)
}

// Reset clears the default metrics instance (useful for testing)
func Reset() {
	Default = nil
	defaultRegistry = nil
	once = sync.Once{}
}
