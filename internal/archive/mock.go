package archive

import (
	"sync"
	"time"

	"github.com/fcvanlose/clubstats/internal/season"
)

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	RecordRolloverFunc func(rec season.PastSeasonRecord, archivedAt time.Time) error
	ListRolloversFunc  func() ([]Entry, error)

	RecordRolloverCalls []season.PastSeasonRecord
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) RecordRollover(rec season.PastSeasonRecord, archivedAt time.Time) error {
	m.mu.Lock()
	m.RecordRolloverCalls = append(m.RecordRolloverCalls, rec)
	fn := m.RecordRolloverFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(rec, archivedAt)
	}
	return nil
}

func (m *MockStore) ListRollovers() ([]Entry, error) {
	m.mu.Lock()
	fn := m.ListRolloversFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return nil, nil
}
