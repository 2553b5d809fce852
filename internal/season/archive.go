package season

// MaxArchiveEntries caps the locally persisted past-season list.
const MaxArchiveEntries = 24

// AppendArchive prepends rec to the archive list, deduplicating by season key
// (the newest write wins) and dropping the oldest entries beyond the cap.
// The input slice is not modified.
func AppendArchive(list []PastSeasonRecord, rec PastSeasonRecord) []PastSeasonRecord {
	out := make([]PastSeasonRecord, 0, len(list)+1)
	out = append(out, rec)
	for _, existing := range list {
		if existing.SeasonKey == rec.SeasonKey {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > MaxArchiveEntries {
		out = out[:MaxArchiveEntries]
	}
	return out
}
