package archive

import (
	"database/sql"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fcvanlose/clubstats/internal/season"
)

// Entry is one recorded rollover in the audit log. Unlike the capped
// past-seasons list the tracker serves, this log is unbounded.
type Entry struct {
	ID         int64     `json:"id"`
	SeasonKey  string    `json:"seasonKey"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	ArchivedAt time.Time `json:"archivedAt"`
}

// Store defines the interface for the rollover audit log.
type Store interface {
	RecordRollover(rec season.PastSeasonRecord, archivedAt time.Time) error
	ListRollovers() ([]Entry, error)
}

// store handles rollover audit database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new rollover audit Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// RecordRollover appends a rollover to the audit log.
func (s *store) RecordRollover(rec season.PastSeasonRecord, archivedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO season_rollovers (season_key, start_date, end_date, archived_at)
		VALUES (?, ?, ?, ?);
	`, rec.SeasonKey, rec.StartDate.Unix(), rec.EndDate.Unix(), archivedAt.Unix())
	if err != nil {
		log.Error("Failed to record season rollover", "error", err, "seasonKey", rec.SeasonKey)
		return err
	}
	log.Info("Recorded season rollover", "seasonKey", rec.SeasonKey)
	return nil
}

// ListRollovers returns all recorded rollovers, newest first.
func (s *store) ListRollovers() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, season_key, start_date, end_date, archived_at
		FROM season_rollovers ORDER BY archived_at DESC, id DESC
	`)
	if err != nil {
		log.Error("Failed to query season rollovers", "error", err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var start, end, archived int64
		if err := rows.Scan(&e.ID, &e.SeasonKey, &start, &end, &archived); err != nil {
			log.Error("Failed to scan rollover row", "error", err)
			continue
		}
		e.StartDate = time.Unix(start, 0)
		e.EndDate = time.Unix(end, 0)
		e.ArchivedAt = time.Unix(archived, 0)
		entries = append(entries, e)
	}
	return entries, nil
}
