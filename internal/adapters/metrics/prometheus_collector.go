package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "devempire"
	// Subsystem for game loop metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalLedgerCollector is the singleton ledger metrics collector
	// Set by SetGlobalLedgerCollector() when metrics are enabled
	globalLedgerCollector LedgerMetricsRecorder

	// globalGameCollector is the singleton game metrics collector
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameEventRecorder
)

// LedgerMetricsRecorder defines the interface for recording journaled transactions
type LedgerMetricsRecorder interface {
	RecordTransaction(transactionType string, category string, unit string, amount float64, balanceAfter float64)
}

// GameEventRecorder defines the interface for recording discrete game events
type GameEventRecorder interface {
	RecordGameEvent(event string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalLedgerCollector sets the global ledger metrics collector
func SetGlobalLedgerCollector(collector LedgerMetricsRecorder) {
	globalLedgerCollector = collector
}

// RecordTransaction records a journaled transaction globally
func RecordTransaction(transactionType string, category string, unit string, amount float64, balanceAfter float64) {
	if globalLedgerCollector != nil {
		globalLedgerCollector.RecordTransaction(transactionType, category, unit, amount, balanceAfter)
	}
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameEventRecorder) {
	globalGameCollector = collector
}

// RecordGameEvent records a discrete game event (hack, prestige, bug_spawned, ...) globally
func RecordGameEvent(event string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameEvent(event)
	}
}

// register adds collectors to the global registry; a no-op when metrics are disabled
func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
