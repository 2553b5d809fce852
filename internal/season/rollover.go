package season

import "time"

// RolloverEvent describes a detected season rollover. The outgoing season has
// been demoted to a past record and NewSeason is the season containing the
// check time.
type RolloverEvent struct {
	Outgoing  PastSeasonRecord `json:"outgoing"`
	NewSeason Descriptor       `json:"newSeason"`
}

// CheckRollover reports whether now has left the current season's month.
// It is side-effect-free; the caller is responsible for persisting the archive
// entry and updating its current-season state. A nil return means the season
// is unchanged.
func CheckRollover(current Descriptor, now time.Time) *RolloverEvent {
	next := Current(now)
	if next == current {
		return nil
	}
	return &RolloverEvent{
		Outgoing:  current.PastRecord(),
		NewSeason: next,
	}
}
