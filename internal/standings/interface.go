package standings

// StandingsClient defines the interface for interacting with the remote
// standings API. This allows for mock implementations to be used in tests.
type StandingsClient interface {
	// GetStandings fetches the roster for a season (calendar month 1-12),
	// filtered server-side.
	GetStandings(season int) ([]PlayerSeasonRecord, error)
	// UpdatePlayerStats applies a partial counter update to a single player
	// and returns the updated record.
	UpdatePlayerStats(playerID string, patch StatPatch) (PlayerSeasonRecord, error)
}
