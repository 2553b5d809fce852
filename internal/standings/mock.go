package standings

import "sync"

// MockClient is a mock implementation of the StandingsClient interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetStandingsFunc      func(season int) ([]PlayerSeasonRecord, error)
	UpdatePlayerStatsFunc func(playerID string, patch StatPatch) (PlayerSeasonRecord, error)

	// Call records
	GetStandingsCalls      []int
	UpdatePlayerStatsCalls []struct {
		PlayerID string
		Patch    StatPatch
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
	m.GetStandingsCalls = nil
	m.UpdatePlayerStatsCalls = nil
}

func (m *MockClient) GetStandings(season int) ([]PlayerSeasonRecord, error) {
	m.mu.Lock()
	m.GetStandingsCalls = append(m.GetStandingsCalls, season)
	fn := m.GetStandingsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(season)
	}
	return []PlayerSeasonRecord{}, nil
}

func (m *MockClient) UpdatePlayerStats(playerID string, patch StatPatch) (PlayerSeasonRecord, error) {
	m.mu.Lock()
	m.UpdatePlayerStatsCalls = append(m.UpdatePlayerStatsCalls, struct {
		PlayerID string
		Patch    StatPatch
	}{playerID, patch})
	fn := m.UpdatePlayerStatsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(playerID, patch)
	}
	return PlayerSeasonRecord{ID: playerID}, nil
}
