package notifier

import (
	"sync"

	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/winners"
)

var _ Notifier = (*MockNotifier)(nil)

// MockNotifier is a mock implementation of the Notifier interface for
// testing. It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendWeeklyWinnersFunc  func(seasonKey string, week int, w winners.WeeklyWinners, dryRun bool) error
	SendSeasonRolloverFunc func(ev *season.RolloverEvent, dryRun bool) error
	SendLeaderboardFunc    func(roster []standings.PlayerSeasonRecord, dryRun bool) error

	// Call records
	SendWeeklyWinnersCalls []struct {
		SeasonKey string
		Week      int
		Winners   winners.WeeklyWinners
	}
	SendSeasonRolloverCalls []*season.RolloverEvent
	SendLeaderboardCalls    [][]standings.PlayerSeasonRecord
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendWeeklyWinnersCalls = nil
	m.SendSeasonRolloverCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *MockNotifier) SendWeeklyWinners(seasonKey string, week int, w winners.WeeklyWinners, dryRun bool) error {
	m.mu.Lock()
	m.SendWeeklyWinnersCalls = append(m.SendWeeklyWinnersCalls, struct {
		SeasonKey string
		Week      int
		Winners   winners.WeeklyWinners
	}{seasonKey, week, w})
	fn := m.SendWeeklyWinnersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(seasonKey, week, w, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendSeasonRollover(ev *season.RolloverEvent, dryRun bool) error {
	m.mu.Lock()
	m.SendSeasonRolloverCalls = append(m.SendSeasonRolloverCalls, ev)
	fn := m.SendSeasonRolloverFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ev, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendLeaderboard(roster []standings.PlayerSeasonRecord, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, roster)
	fn := m.SendLeaderboardFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(roster, dryRun)
	}
	return nil
}
