package kvstore

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles key/value state database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new sqlite-backed KeyValueStore.
func New(db *sql.DB) KeyValueStore {
	return &store{
		db: db,
	}
}

func (s *store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		log.Error("Failed to read kv state", "error", err, "key", key)
		return "", false, err
	}
	return value, true, nil
}

// Set upserts a key, replacing any existing value.
func (s *store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`, key, value)
	if err != nil {
		log.Error("Failed to write kv state", "error", err, "key", key)
		return err
	}
	log.Debug("Wrote kv state", "key", key)
	return nil
}

func (s *store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM kv_state WHERE key = ?", key)
	if err != nil {
		log.Error("Failed to delete kv state", "error", err, "key", key)
	}
	return err
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM kv_state")
	if err != nil {
		log.Error("Failed to clear kv state", "error", err)
	}
	return err
}
