package tracker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fcvanlose/clubstats/internal/archive"
	"github.com/fcvanlose/clubstats/internal/kvstore"
	"github.com/fcvanlose/clubstats/internal/metrics"
	"github.com/fcvanlose/clubstats/internal/notifier"
	"github.com/fcvanlose/clubstats/internal/pubsub"
	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/winners"
)

// New creates a Tracker initialized to the season and week containing the
// current time. The now func is injectable for tests; pass nil for time.Now.
func New(
	standingsC standings.StandingsClient,
	winnersC winners.WinnersClient,
	kv kvstore.KeyValueStore,
	audit archive.Store,
	pubsubC pubsub.PubSubClient,
	notif notifier.Notifier,
	m metrics.Metrics,
	interval time.Duration,
	now func() time.Time,
) *Tracker {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = time.Minute
	}

	t := &Tracker{
		standings: standingsC,
		winners:   winnersC,
		kv:        kv,
		audit:     audit,
		pubsub:    pubsubC,
		notifier:  notif,
		metrics:   m,
		interval:  interval,
		now:       now,
	}

	n := now()
	t.current = season.Current(n)
	t.week = season.WeekOfMonth(n)
	t.persistWeek(t.week)
	log.Info("Tracker initialized", "season", t.current.Key(), "week", t.week)
	return t
}

// CurrentSeasonKey returns the canonical key of the current season.
func (t *Tracker) CurrentSeasonKey() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Key()
}

// CurrentWeek returns the current week of the month (1-4).
func (t *Tracker) CurrentWeek() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.week
}

// Roster returns a copy of the in-memory roster snapshot.
func (t *Tracker) Roster() []standings.PlayerSeasonRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]standings.PlayerSeasonRecord, len(t.roster))
	copy(out, t.roster)
	return out
}

// PastSeasons returns the persisted past-seasons list, newest first.
func (t *Tracker) PastSeasons() ([]season.PastSeasonRecord, error) {
	value, ok, err := t.kv.Get(keyPastSeasons)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []season.PastSeasonRecord{}, nil
	}
	var list []season.PastSeasonRecord
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Tick checks the clock against the current season and week. On a rollover it
// archives the outgoing season, re-initializes the tracker for the new month,
// publishes a season-rolled-over event and notifies the club channel. The week
// is recomputed and persisted independently; a week change never forces a
// rollover. Returns the rollover event, or nil when the season is unchanged.
func (t *Tracker) Tick(dryRun bool) *season.RolloverEvent {
	now := t.now()
	t.metrics.IncRolloverChecks()

	t.mu.Lock()
	ev := season.CheckRollover(t.current, now)
	var finalRoster []standings.PlayerSeasonRecord
	if ev != nil {
		t.metrics.IncRolloversDetected()
		log.Info("Season rollover detected", "outgoing", ev.Outgoing.SeasonKey, "new", ev.NewSeason.Key())

		t.archiveSeason(ev.Outgoing, now)
		t.current = ev.NewSeason
		t.generation++
		finalRoster = t.roster
		t.roster = nil
	}

	week := season.WeekOfMonth(now)
	if week != t.week {
		t.week = week
		t.persistWeek(week)
	}
	t.mu.Unlock()

	if ev != nil {
		if err := t.pubsub.Publish(pubsub.EventSeasonRolledOver, ev); err != nil {
			log.Error("Failed to publish rollover event", "error", err)
		}
		if err := t.notifier.SendSeasonRollover(ev, dryRun); err != nil {
			log.Error("Failed to send rollover notification", "error", err)
		}
		// Close the outgoing season with its final leaderboard. Skipped when
		// the roster was never loaded this season.
		if len(finalRoster) > 0 {
			if err := t.notifier.SendLeaderboard(finalRoster, dryRun); err != nil {
				log.Error("Failed to send final leaderboard", "error", err)
			}
		}
	}
	return ev
}

// Run calls Tick on a fixed interval until the context is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	log.Info("Rollover loop started", "interval", t.interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("Rollover loop stopped")
			return
		case <-ticker.C:
			t.Tick(false)
		}
	}
}

// LoadRoster fetches the roster for a season from the standings API and
// derives achievements for the snapshot. The result is installed as the
// in-memory roster only when the season is still current and no rollover
// happened while the fetch was in flight; the records are returned either way.
func (t *Tracker) LoadRoster(seasonKey string) ([]standings.PlayerSeasonRecord, error) {
	desc, err := season.ParseKey(seasonKey)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	generation := t.generation
	t.mu.Unlock()

	t.metrics.IncRosterLoads()
	records, err := t.standings.GetStandings(int(desc.Month))
	if err != nil {
		t.metrics.IncRosterLoadFailures()
		log.Error("Failed to load roster", "error", err, "season", seasonKey)
		return nil, err
	}
	standings.DeriveAchievements(records)

	t.mu.Lock()
	if t.generation == generation && t.current.Key() == seasonKey {
		t.roster = records
	} else {
		log.Warn("Dropping stale roster response", "season", seasonKey)
	}
	t.mu.Unlock()

	log.Info("Loaded roster", "season", seasonKey, "players", len(records))
	return records, nil
}

// GetOrComputeWeeklyWinners reconciles the weekly winners for (season, week)
// with the remote cache. A cache hit is returned verbatim without recomputing.
// On a miss, or when the cache read fails, the winners are computed from the
// given roster and upserted best-effort; an upsert failure is logged but never
// surfaced, the computed winners are returned regardless.
func (t *Tracker) GetOrComputeWeeklyWinners(seasonKey string, week int, roster []standings.PlayerSeasonRecord) (winners.WeeklyWinners, error) {
	desc, err := season.ParseKey(seasonKey)
	if err != nil {
		return winners.WeeklyWinners{}, err
	}
	month := int(desc.Month)

	cached, err := t.winners.GetWinners(month, week)
	if err != nil {
		// A read failure is indistinguishable from a miss for the caller.
		log.Warn("Winners cache read failed", "error", err, "season", seasonKey, "week", week)
		t.metrics.IncWinnersCacheMisses()
	} else if cached != nil {
		t.metrics.IncWinnersCacheHits()
		return *cached, nil
	} else {
		t.metrics.IncWinnersCacheMisses()
	}

	computed := winners.Compute(roster)
	if err := t.winners.PutWinners(month, week, computed); err != nil {
		t.metrics.IncWinnersCacheWriteFailures()
		log.Warn("Failed to upsert weekly winners", "error", err, "season", seasonKey, "week", week)
	}
	return computed, nil
}

// OnStatUpdate merges partial counter patches into the in-memory roster,
// re-derives achievements for the whole snapshot, refreshes the weekly winners
// cache and publishes a roster-changed event. Patches for unknown players are
// ignored.
func (t *Tracker) OnStatUpdate(patches []standings.PlayerStatPatch, dryRun bool) error {
	t.metrics.IncStatUpdates()

	t.mu.Lock()
	for _, p := range patches {
		for i := range t.roster {
			if t.roster[i].ID == p.ID {
				t.roster[i].Apply(p.StatPatch)
				break
			}
		}
	}
	standings.DeriveAchievements(t.roster)
	roster := make([]standings.PlayerSeasonRecord, len(t.roster))
	copy(roster, t.roster)
	seasonKey := t.current.Key()
	week := t.week
	t.mu.Unlock()

	t.refreshWeeklyWinners(seasonKey, week, roster, dryRun)

	if err := t.pubsub.Publish(pubsub.EventRosterChanged, patches); err != nil {
		log.Error("Failed to publish roster-changed event", "error", err)
		return err
	}
	return nil
}

// refreshWeeklyWinners recomputes the winners from the roster and upserts them
// unconditionally, bypassing the cache read. The roster just changed, so a
// cached value would be stale by definition.
func (t *Tracker) refreshWeeklyWinners(seasonKey string, week int, roster []standings.PlayerSeasonRecord, dryRun bool) {
	desc, err := season.ParseKey(seasonKey)
	if err != nil {
		log.Error("Invalid season key on winners refresh", "error", err, "season", seasonKey)
		return
	}

	computed := winners.Compute(roster)
	if dryRun {
		log.Info("[Dry Run] Would upsert weekly winners", "season", seasonKey, "week", week)
	} else if err := t.winners.PutWinners(int(desc.Month), week, computed); err != nil {
		t.metrics.IncWinnersCacheWriteFailures()
		log.Warn("Failed to upsert weekly winners", "error", err, "season", seasonKey, "week", week)
	}
	if err := t.notifier.SendWeeklyWinners(seasonKey, week, computed, dryRun); err != nil {
		log.Error("Failed to send weekly winners notification", "error", err)
	}
}

// archiveSeason appends the outgoing season to the capped kv archive and the
// unbounded audit log. Called with the tracker mutex held.
func (t *Tracker) archiveSeason(rec season.PastSeasonRecord, now time.Time) {
	list, err := t.PastSeasons()
	if err != nil {
		log.Error("Failed to read past seasons, starting fresh", "error", err)
		list = nil
	}
	updated := season.AppendArchive(list, rec)
	data, err := json.Marshal(updated)
	if err != nil {
		log.Error("Failed to marshal past seasons", "error", err)
	} else if err := t.kv.Set(keyPastSeasons, string(data)); err != nil {
		log.Error("Failed to persist past seasons", "error", err)
	}

	if err := t.audit.RecordRollover(rec, now); err != nil {
		log.Error("Failed to record rollover in audit log", "error", err, "seasonKey", rec.SeasonKey)
	}
}

func (t *Tracker) persistWeek(week int) {
	if err := t.kv.Set(keyCurrentWeek, strconv.Itoa(week)); err != nil {
		log.Error("Failed to persist current week", "error", err, "week", week)
	}
}
