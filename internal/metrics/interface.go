package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation
// (e.g., Prometheus).
type Metrics interface {
	IncRolloverChecks()
	IncRolloversDetected()
	IncRosterLoads()
	IncRosterLoadFailures()
	IncWinnersCacheHits()
	IncWinnersCacheMisses()
	IncWinnersCacheWriteFailures()
	IncStatUpdates()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
