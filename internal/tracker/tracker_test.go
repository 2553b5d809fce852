package tracker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fcvanlose/clubstats/internal/archive"
	"github.com/fcvanlose/clubstats/internal/kvstore"
	"github.com/fcvanlose/clubstats/internal/metrics"
	"github.com/fcvanlose/clubstats/internal/notifier"
	"github.com/fcvanlose/clubstats/internal/pubsub"
	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/tracker"
	"github.com/fcvanlose/clubstats/internal/winners"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	standings *standings.MockClient
	winners   *winners.MockClient
	kv        *kvstore.MockStore
	audit     *archive.MockStore
	pubsub    *pubsub.MockClient
	notifier  *notifier.MockNotifier
	metrics   *metrics.MockMetrics
}

// newTestTracker builds a tracker whose clock reads through the given pointer,
// so tests can move time forward between calls.
func newTestTracker(now *time.Time) (*tracker.Tracker, *fixture) {
	f := &fixture{
		standings: standings.NewMockClient(),
		winners:   winners.NewMockClient(),
		kv:        kvstore.NewMock(),
		audit:     archive.NewMock(),
		pubsub:    pubsub.NewMock(),
		notifier:  notifier.NewMock(),
		metrics:   metrics.NewMock(),
	}
	tr := tracker.New(
		f.standings, f.winners, f.kv, f.audit, f.pubsub, f.notifier, f.metrics,
		time.Minute,
		func() time.Time { return *now },
	)
	return tr, f
}

func TestNew_InitialState(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	assert.Equal(t, "2024-06", tr.CurrentSeasonKey())
	assert.Equal(t, 1, tr.CurrentWeek())
	assert.Empty(t, tr.Roster())

	// The initial week is persisted on construction.
	require.Len(t, f.kv.SetCalls, 1)
	assert.Equal(t, "currentWeekOfMonth", f.kv.SetCalls[0].Key)
	assert.Equal(t, "1", f.kv.SetCalls[0].Value)
}

func TestTick_NoChange(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	ev := tr.Tick(false)
	assert.Nil(t, ev)
	assert.Equal(t, "2024-06", tr.CurrentSeasonKey())
	assert.Equal(t, 1, f.metrics.RolloverChecks)
	assert.Equal(t, 0, f.metrics.RolloversDetected)
	assert.Empty(t, f.pubsub.PublishedEvents)
	assert.Empty(t, f.notifier.SendSeasonRolloverCalls)
}

func TestTick_WeekAdvance(t *testing.T) {
	// July 2024 starts on a Monday, so day 7 is week 1 and day 8 is week 2.
	now := time.Date(2024, 7, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)
	require.Equal(t, 1, tr.CurrentWeek())

	now = time.Date(2024, 7, 8, 0, 0, 0, 0, time.Local)
	ev := tr.Tick(false)

	assert.Nil(t, ev, "a week change must not force a rollover")
	assert.Equal(t, 2, tr.CurrentWeek())
	require.Len(t, f.kv.SetCalls, 2)
	assert.Equal(t, "currentWeekOfMonth", f.kv.SetCalls[1].Key)
	assert.Equal(t, "2", f.kv.SetCalls[1].Value)
}

func TestTick_Rollover(t *testing.T) {
	now := time.Date(2024, 5, 31, 23, 59, 59, 0, time.Local)
	tr, f := newTestTracker(&now)
	require.Nil(t, tr.Tick(false), "last second of the month is not a rollover")

	now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	ev := tr.Tick(false)

	require.NotNil(t, ev)
	assert.Equal(t, "2024-05", ev.Outgoing.SeasonKey)
	assert.Equal(t, "2024-06", ev.NewSeason.Key())
	assert.Equal(t, "2024-06", tr.CurrentSeasonKey())
	assert.Equal(t, 1, tr.CurrentWeek())
	assert.Equal(t, 1, f.metrics.RolloversDetected)

	// Archive persisted to the kv store.
	past, err := tr.PastSeasons()
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "2024-05", past[0].SeasonKey)
	assert.True(t, past[0].StartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, past[0].EndDate.Equal(time.Date(2024, 5, 31, 0, 0, 0, 0, time.Local)))

	// Audit log, event and notification.
	require.Len(t, f.audit.RecordRolloverCalls, 1)
	assert.Equal(t, "2024-05", f.audit.RecordRolloverCalls[0].SeasonKey)
	require.Len(t, f.pubsub.PublishedEvents, 1)
	assert.Equal(t, pubsub.EventSeasonRolledOver, f.pubsub.PublishedEvents[0])
	require.Len(t, f.notifier.SendSeasonRolloverCalls, 1)
	assert.Equal(t, "2024-05", f.notifier.SendSeasonRolloverCalls[0].Outgoing.SeasonKey)

	// No roster was loaded this season, so there is no final leaderboard.
	assert.Empty(t, f.notifier.SendLeaderboardCalls)
}

func TestTick_RolloverSendsFinalLeaderboard(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return []standings.PlayerSeasonRecord{
			{ID: "p1", Name: "Player A", Points: 25},
			{ID: "p2", Name: "Player B", Points: 13},
		}, nil
	}
	_, err := tr.LoadRoster("2024-05")
	require.NoError(t, err)

	now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, tr.Tick(false))

	// The outgoing season's standings go out one last time.
	require.Len(t, f.notifier.SendLeaderboardCalls, 1)
	sent := f.notifier.SendLeaderboardCalls[0]
	require.Len(t, sent, 2)
	assert.Equal(t, "Player A", sent[0].Name)
	assert.Empty(t, tr.Roster(), "the snapshot is sent, not retained")
}

func TestTick_RolloverClearsRoster(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Played: 3}}, nil
	}
	_, err := tr.LoadRoster("2024-05")
	require.NoError(t, err)
	require.Len(t, tr.Roster(), 1)

	now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, tr.Tick(false))
	assert.Empty(t, tr.Roster())
}

func TestPastSeasons_EmptyWithoutRollovers(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, _ := newTestTracker(&now)

	past, err := tr.PastSeasons()
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestLoadRoster_DerivesAchievements(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(seasonMonth int) ([]standings.PlayerSeasonRecord, error) {
		assert.Equal(t, 6, seasonMonth, "season key is translated to the API month")
		return []standings.PlayerSeasonRecord{
			{ID: "p1", Name: "Player A", Played: 5, Won: 4, Goals: 9, Points: 13},
			{ID: "p2", Name: "Player B", Played: 4, Won: 1, Goals: 2, Points: 4},
		}, nil
	}

	records, err := tr.LoadRoster("2024-06")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records[0].Achievements, standings.AchievementTopScorer)
	assert.Contains(t, records[0].Achievements, standings.AchievementMostConsistent)
	assert.NotContains(t, records[1].Achievements, standings.AchievementTopScorer)

	assert.Len(t, tr.Roster(), 2)
	assert.Equal(t, 1, f.metrics.RosterLoads)
	assert.Equal(t, 0, f.metrics.RosterLoadFailures)
}

func TestLoadRoster_FetchErrorSurfaced(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	fetchErr := &standings.FetchError{URL: "http://standings/api/standings?season=6", StatusCode: 500, Reason: "server error"}
	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return nil, fetchErr
	}

	_, err := tr.LoadRoster("2024-06")
	require.Error(t, err)
	var fe *standings.FetchError
	assert.ErrorAs(t, err, &fe)
	assert.Empty(t, tr.Roster())
	assert.Equal(t, 1, f.metrics.RosterLoadFailures)
}

func TestLoadRoster_InvalidKey(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	_, err := tr.LoadRoster("june-2024")
	require.Error(t, err)
	assert.Empty(t, f.standings.GetStandingsCalls)
}

func TestLoadRoster_StaleResponseDropped(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	// The season rolls over while the fetch is in flight. The returned
	// records must not be installed as the roster of the new season.
	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
		require.NotNil(t, tr.Tick(false))
		return []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 10}}, nil
	}

	records, err := tr.LoadRoster("2024-05")
	require.NoError(t, err)
	assert.Len(t, records, 1, "records are still returned to the caller")
	assert.Empty(t, tr.Roster(), "stale snapshot must not be installed")
	assert.Equal(t, "2024-06", tr.CurrentSeasonKey())
}

func TestGetOrComputeWeeklyWinners_CacheHit(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	cached := &winners.WeeklyWinners{
		MVP:       &winners.MVP{Name: "Cached MVP", Points: 99},
		TopScorer: &winners.TopScorer{Name: "Cached Scorer", Goals: 42},
	}
	f.winners.GetWinnersFunc = func(season, week int) (*winners.WeeklyWinners, error) {
		assert.Equal(t, 6, season)
		assert.Equal(t, 2, week)
		return cached, nil
	}

	// A roster that would compute to different winners proves the hit is
	// returned verbatim.
	roster := []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 1, Goals: 1}}
	got, err := tr.GetOrComputeWeeklyWinners("2024-06", 2, roster)
	require.NoError(t, err)
	assert.Equal(t, *cached, got)
	assert.Empty(t, f.winners.PutWinnersCalls, "a hit must not be re-upserted")
	assert.Equal(t, 1, f.metrics.WinnersCacheHits)
	assert.Equal(t, 0, f.metrics.WinnersCacheMisses)
}

func TestGetOrComputeWeeklyWinners_CacheMiss(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	roster := []standings.PlayerSeasonRecord{
		{ID: "p1", Name: "Player A", Points: 10, Goals: 2},
		{ID: "p2", Name: "Player B", Points: 15, Goals: 5},
	}
	got, err := tr.GetOrComputeWeeklyWinners("2024-06", 1, roster)
	require.NoError(t, err)
	require.NotNil(t, got.MVP)
	assert.Equal(t, "Player B", got.MVP.Name)
	require.NotNil(t, got.TopScorer)
	assert.Equal(t, "Player B", got.TopScorer.Name)

	require.Len(t, f.winners.PutWinnersCalls, 1)
	assert.Equal(t, 6, f.winners.PutWinnersCalls[0].Season)
	assert.Equal(t, 1, f.winners.PutWinnersCalls[0].Week)
	assert.Equal(t, got, f.winners.PutWinnersCalls[0].Winners)
	assert.Equal(t, 1, f.metrics.WinnersCacheMisses)
}

func TestGetOrComputeWeeklyWinners_ReadErrorIsMiss(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.winners.GetWinnersFunc = func(season, week int) (*winners.WeeklyWinners, error) {
		return nil, &winners.CacheReadError{URL: "http://winners", Err: errors.New("connection refused")}
	}

	roster := []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 7, Goals: 3}}
	got, err := tr.GetOrComputeWeeklyWinners("2024-06", 3, roster)
	require.NoError(t, err, "a cache read failure is treated as a miss")
	require.NotNil(t, got.MVP)
	assert.Equal(t, "Player A", got.MVP.Name)
	require.Len(t, f.winners.PutWinnersCalls, 1)
	assert.Equal(t, 1, f.metrics.WinnersCacheMisses)
}

func TestGetOrComputeWeeklyWinners_WriteFailureBestEffort(t *testing.T) {
	now := time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)
	require.Equal(t, "2024-02", tr.CurrentSeasonKey())
	require.Equal(t, 4, tr.CurrentWeek(), "Feb 29 lands in the capped fourth week")

	f.winners.PutWinnersFunc = func(season, week int, w winners.WeeklyWinners) error {
		return &winners.CacheWriteError{Season: season, Week: week, Err: errors.New("upstream down")}
	}

	roster := []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 4, Goals: 1}}
	got, err := tr.GetOrComputeWeeklyWinners("2024-02", 4, roster)
	require.NoError(t, err, "a failed upsert must not surface")
	require.NotNil(t, got.MVP)
	assert.Equal(t, "Player A", got.MVP.Name)
	assert.Equal(t, 1, f.metrics.WinnersCacheWriteFailure)
}

func TestOnStatUpdate_PartialMerge(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return []standings.PlayerSeasonRecord{
			{ID: "p1", Name: "Player A", Played: 5, Goals: 2, Points: 10},
			{ID: "p2", Name: "Player B", Played: 4, Goals: 5, Points: 15},
		}, nil
	}
	_, err := tr.LoadRoster("2024-06")
	require.NoError(t, err)
	f.winners.Reset()

	points := 20
	err = tr.OnStatUpdate([]standings.PlayerStatPatch{
		{ID: "p1", StatPatch: standings.StatPatch{Points: &points}},
	}, false)
	require.NoError(t, err)

	roster := tr.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, 20, roster[0].Points, "patched field is updated")
	assert.Equal(t, 2, roster[0].Goals, "untouched fields are preserved")
	assert.Equal(t, 5, roster[0].Played)
	assert.Equal(t, 15, roster[1].Points, "other players are untouched")

	// Achievements re-derived for the whole snapshot.
	assert.Contains(t, roster[0].Achievements, standings.AchievementMostConsistent)
	assert.Contains(t, roster[1].Achievements, standings.AchievementTopScorer)

	// Winners refreshed with the new leader, bypassing the cache read.
	assert.Empty(t, f.winners.GetWinnersCalls)
	require.Len(t, f.winners.PutWinnersCalls, 1)
	put := f.winners.PutWinnersCalls[0]
	require.NotNil(t, put.Winners.MVP)
	assert.Equal(t, "Player A", put.Winners.MVP.Name)
	assert.Equal(t, 20, put.Winners.MVP.Points)

	// Event and notification.
	require.Len(t, f.pubsub.PublishedEvents, 1)
	assert.Equal(t, pubsub.EventRosterChanged, f.pubsub.PublishedEvents[0])
	require.Len(t, f.notifier.SendWeeklyWinnersCalls, 1)
	assert.Equal(t, "2024-06", f.notifier.SendWeeklyWinnersCalls[0].SeasonKey)
	assert.Equal(t, 1, f.metrics.StatUpdates)
}

func TestOnStatUpdate_DryRunSkipsUpsert(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 10}}, nil
	}
	_, err := tr.LoadRoster("2024-06")
	require.NoError(t, err)
	f.winners.Reset()

	points := 12
	err = tr.OnStatUpdate([]standings.PlayerStatPatch{
		{ID: "p1", StatPatch: standings.StatPatch{Points: &points}},
	}, true)
	require.NoError(t, err)

	// A dry run must not write to the remote winners cache. The notification
	// still goes through the notifier, which handles dry-run itself.
	assert.Empty(t, f.winners.PutWinnersCalls)
	require.Len(t, f.notifier.SendWeeklyWinnersCalls, 1)
}

func TestOnStatUpdate_UnknownPlayerIgnored(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	f.standings.GetStandingsFunc = func(season int) ([]standings.PlayerSeasonRecord, error) {
		return []standings.PlayerSeasonRecord{{ID: "p1", Name: "Player A", Points: 10}}, nil
	}
	_, err := tr.LoadRoster("2024-06")
	require.NoError(t, err)

	points := 99
	err = tr.OnStatUpdate([]standings.PlayerStatPatch{
		{ID: "ghost", StatPatch: standings.StatPatch{Points: &points}},
	}, false)
	require.NoError(t, err)

	roster := tr.Roster()
	require.Len(t, roster, 1)
	assert.Equal(t, 10, roster[0].Points)
}

func TestRolloverArchive_AccumulatesNewestFirst(t *testing.T) {
	now := time.Date(2024, 4, 15, 12, 0, 0, 0, time.Local)
	tr, _ := newTestTracker(&now)

	now = time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, tr.Tick(false))
	now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, tr.Tick(false))

	past, err := tr.PastSeasons()
	require.NoError(t, err)
	require.Len(t, past, 2)
	assert.Equal(t, "2024-05", past[0].SeasonKey)
	assert.Equal(t, "2024-04", past[1].SeasonKey)
}

func TestRollover_CrossYear(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.Local)
	tr, _ := newTestTracker(&now)

	now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	ev := tr.Tick(false)
	require.NotNil(t, ev)
	assert.Equal(t, "2024-12", ev.Outgoing.SeasonKey)
	assert.Equal(t, "2025-01", tr.CurrentSeasonKey())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	tr, _ := newTestTracker(&now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestPastSeasons_RoundTripsThroughJSON(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	tr, f := newTestTracker(&now)

	now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, tr.Tick(false))

	value, ok, err := f.kv.Get("pastSeasons")
	require.NoError(t, err)
	require.True(t, ok)

	var list []season.PastSeasonRecord
	require.NoError(t, json.Unmarshal([]byte(value), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2024-05", list[0].SeasonKey)
}
