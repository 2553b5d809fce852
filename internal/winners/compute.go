package winners

import "github.com/fcvanlose/clubstats/internal/standings"

// Compute reduces a roster snapshot to its weekly leaders. The records carry
// cumulative season counters, so these are season-to-date leaders snapshotted
// under the week number; ties are broken by first-encountered iteration order,
// not by name.
func Compute(roster []standings.PlayerSeasonRecord) WeeklyWinners {
	var w WeeklyWinners
	if len(roster) == 0 {
		return w
	}

	mvp := roster[0]
	top := roster[0]
	for _, r := range roster[1:] {
		if r.Points > mvp.Points {
			mvp = r
		}
		if r.Goals > top.Goals {
			top = r
		}
	}

	if mvp.Points > 0 {
		w.MVP = &MVP{Name: mvp.Name, Points: mvp.Points}
	}
	if top.Goals > 0 {
		w.TopScorer = &TopScorer{Name: top.Name, Goals: top.Goals}
	}
	return w
}
