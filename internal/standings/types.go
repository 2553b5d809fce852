package standings

// PlayerSeasonRecord is one row per player per season as served by the
// standings API. The short JSON keys match the wire format the club's
// frontend already consumes. Points are authoritative from the API and are
// never derived locally; achievements are derived locally and never sent back.
type PlayerSeasonRecord struct {
	ID           string   `json:"_id"`
	Name         string   `json:"player"`
	Played       int      `json:"p"`
	Won          int      `json:"w"`
	Drawn        int      `json:"d"`
	Lost         int      `json:"l"`
	Goals        int      `json:"g"`
	Assists      int      `json:"a"`
	Saves        int      `json:"s"`
	Points       int      `json:"pt"`
	Achievements []string `json:"achievements,omitempty"`
}

// StatPatch is a partial update of a player's counters. Nil fields are left
// untouched when the patch is applied.
type StatPatch struct {
	Played  *int `json:"p,omitempty"`
	Won     *int `json:"w,omitempty"`
	Drawn   *int `json:"d,omitempty"`
	Lost    *int `json:"l,omitempty"`
	Goals   *int `json:"g,omitempty"`
	Assists *int `json:"a,omitempty"`
	Saves   *int `json:"s,omitempty"`
	Points  *int `json:"pt,omitempty"`
}

// PlayerStatPatch pairs a patch with the player it applies to.
type PlayerStatPatch struct {
	ID string `json:"_id"`
	StatPatch
}

// Apply merges the non-nil fields of the patch into the record.
func (r *PlayerSeasonRecord) Apply(p StatPatch) {
	if p.Played != nil {
		r.Played = *p.Played
	}
	if p.Won != nil {
		r.Won = *p.Won
	}
	if p.Drawn != nil {
		r.Drawn = *p.Drawn
	}
	if p.Lost != nil {
		r.Lost = *p.Lost
	}
	if p.Goals != nil {
		r.Goals = *p.Goals
	}
	if p.Assists != nil {
		r.Assists = *p.Assists
	}
	if p.Saves != nil {
		r.Saves = *p.Saves
	}
	if p.Points != nil {
		r.Points = *p.Points
	}
}
