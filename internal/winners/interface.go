package winners

// WinnersClient defines the interface for the remote weekly-winners cache.
type WinnersClient interface {
	// GetWinners reads the cached winners for (season, week). A (nil, nil)
	// return is a cache miss.
	GetWinners(season, week int) (*WeeklyWinners, error)
	// PutWinners upserts the winners for (season, week).
	PutWinners(season, week int, w WeeklyWinners) error
}
