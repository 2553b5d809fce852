package season

import (
	"fmt"
	"time"
)

// Descriptor identifies a season. A season spans exactly one calendar month.
type Descriptor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Current returns the descriptor for the season containing the given time.
func Current(now time.Time) Descriptor {
	return Descriptor{Year: now.Year(), Month: now.Month()}
}

// ParseKey parses a canonical "YYYY-MM" season key back into a Descriptor.
func ParseKey(key string) (Descriptor, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid season key %q: %w", key, err)
	}
	return Descriptor{Year: t.Year(), Month: t.Month()}, nil
}

// Key returns the canonical "YYYY-MM" key for this season.
func (d Descriptor) Key() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Start returns the first day of the season at midnight local time.
func (d Descriptor) Start() time.Time {
	return time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.Local)
}

// End returns the last day of the season at midnight local time.
func (d Descriptor) End() time.Time {
	return d.Start().AddDate(0, 1, -1)
}

// PastRecord returns the archival record for this season once it has been
// superseded by a newer one.
func (d Descriptor) PastRecord() PastSeasonRecord {
	return PastSeasonRecord{
		SeasonKey: d.Key(),
		StartDate: d.Start(),
		EndDate:   d.End(),
	}
}

// PastSeasonRecord is one entry in the locally persisted season archive.
type PastSeasonRecord struct {
	SeasonKey string    `json:"seasonKey"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
