package winners

import "sync"

// MockClient is a mock implementation of the WinnersClient interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetWinnersFunc func(season, week int) (*WeeklyWinners, error)
	PutWinnersFunc func(season, week int, w WeeklyWinners) error

	// Call records
	GetWinnersCalls []struct {
		Season int
		Week   int
	}
	PutWinnersCalls []struct {
		Season  int
		Week    int
		Winners WeeklyWinners
	}
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetWinnersCalls = nil
	m.PutWinnersCalls = nil
}

func (m *MockClient) GetWinners(season, week int) (*WeeklyWinners, error) {
	m.mu.Lock()
	m.GetWinnersCalls = append(m.GetWinnersCalls, struct {
		Season int
		Week   int
	}{season, week})
	fn := m.GetWinnersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(season, week)
	}
	return nil, nil
}

func (m *MockClient) PutWinners(season, week int, w WeeklyWinners) error {
	m.mu.Lock()
	m.PutWinnersCalls = append(m.PutWinnersCalls, struct {
		Season  int
		Week    int
		Winners WeeklyWinners
	}{season, week, w})
	fn := m.PutWinnersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(season, week, w)
	}
	return nil
}
