package metrics

import "sync"

var _ Metrics = (*MockMetrics)(nil)

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It counts calls instead of exporting them.
type MockMetrics struct {
	mu sync.Mutex

	RolloverChecks           int
	RolloversDetected        int
	RosterLoads              int
	RosterLoadFailures       int
	WinnersCacheHits         int
	WinnersCacheMisses       int
	WinnersCacheWriteFailure int
	StatUpdates              int
	NotifSent                int
	NotifFailed              int
	StartupTime              float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncRolloverChecks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RolloverChecks++
}

func (m *MockMetrics) IncRolloversDetected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RolloversDetected++
}

func (m *MockMetrics) IncRosterLoads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterLoads++
}

func (m *MockMetrics) IncRosterLoadFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterLoadFailures++
}

func (m *MockMetrics) IncWinnersCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WinnersCacheHits++
}

func (m *MockMetrics) IncWinnersCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WinnersCacheMisses++
}

func (m *MockMetrics) IncWinnersCacheWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WinnersCacheWriteFailure++
}

func (m *MockMetrics) IncStatUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatUpdates++
}

func (m *MockMetrics) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSent++
}

func (m *MockMetrics) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailed++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
