package standings

// Achievement names shown on the stats page.
const (
	AchievementTopScorer      = "Top Scorer"
	AchievementMostConsistent = "Most Consistent"
	AchievementBestDefender   = "Best Defender"
)

// bestDefenderWinRatio is the minimum win ratio for the saves achievement.
const bestDefenderWinRatio = 0.6

// DeriveAchievements recomputes the achievements for every record in the
// roster snapshot in place. Achievements are purely a function of the snapshot
// and must be re-derived whenever it changes; they are never persisted.
func DeriveAchievements(records []PlayerSeasonRecord) {
	if len(records) == 0 {
		return
	}

	var maxGoals, maxPlayed, maxSaves int
	for _, r := range records {
		if r.Goals > maxGoals {
			maxGoals = r.Goals
		}
		if r.Played > maxPlayed {
			maxPlayed = r.Played
		}
		if r.Saves > maxSaves {
			maxSaves = r.Saves
		}
	}

	for i := range records {
		r := &records[i]
		ach := []string{}
		if r.Goals == maxGoals && maxGoals > 0 {
			ach = append(ach, AchievementTopScorer)
		}
		if r.Played == maxPlayed && maxPlayed > 0 {
			ach = append(ach, AchievementMostConsistent)
		}
		if r.Saves == maxSaves && maxSaves > 0 && r.Played > 0 &&
			float64(r.Won)/float64(r.Played) > bestDefenderWinRatio {
			ach = append(ach, AchievementBestDefender)
		}
		r.Achievements = ach
	}
}
