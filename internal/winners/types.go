package winners

// MVP is the player with the most points in the season's roster.
type MVP struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// TopScorer is the player with the most goals in the season's roster.
type TopScorer struct {
	Name  string `json:"name"`
	Goals int    `json:"goals"`
}

// WeeklyWinners holds the leaders cached per (season, week). Either field is
// nil when every candidate value is zero.
type WeeklyWinners struct {
	MVP       *MVP       `json:"mvp"`
	TopScorer *TopScorer `json:"topScorer"`
}

// winnersResponse is the read-side wire envelope.
type winnersResponse struct {
	Winners *WeeklyWinners `json:"winners"`
}

// upsertRequest is the write-side wire envelope.
type upsertRequest struct {
	Season  int           `json:"season"`
	Week    int           `json:"week"`
	Winners WeeklyWinners `json:"winners"`
}
