package notifier

import (
	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/winners"
)

// Notifier defines a high-level interface for sending notifications about
// business events. This decouples the rest of the application from the
// specific notification provider (e.g., Slack).
type Notifier interface {
	// For a refreshed weekly leaders cache
	SendWeeklyWinners(seasonKey string, week int, w winners.WeeklyWinners, dryRun bool) error
	// For a detected season rollover
	SendSeasonRollover(ev *season.RolloverEvent, dryRun bool) error
	// For the full season leaderboard
	SendLeaderboard(roster []standings.PlayerSeasonRecord, dryRun bool) error
}
