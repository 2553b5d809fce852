package kvstore

import "sync"

// MockStore is an in-memory implementation of the KeyValueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu     sync.Mutex
	values map[string]string

	// Spies for method calls
	GetFunc func(key string) (string, bool, error)
	SetFunc func(key, value string) error

	// Call records
	SetCalls []struct {
		Key   string
		Value string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{values: make(map[string]string)}
}

func (m *MockStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	fn := m.GetFunc
	value, ok := m.values[key]
	m.mu.Unlock()
	if fn != nil {
		return fn(key)
	}
	return value, ok, nil
}

func (m *MockStore) Set(key, value string) error {
	m.mu.Lock()
	m.SetCalls = append(m.SetCalls, struct {
		Key   string
		Value string
	}{key, value})
	fn := m.SetFunc
	if fn == nil {
		m.values[key] = value
	}
	m.mu.Unlock()
	if fn != nil {
		return fn(key, value)
	}
	return nil
}

func (m *MockStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	m.values = make(map[string]string)
	m.mu.Unlock()
	return nil
}
