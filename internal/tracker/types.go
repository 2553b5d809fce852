package tracker

import (
	"sync"
	"time"

	"github.com/fcvanlose/clubstats/internal/archive"
	"github.com/fcvanlose/clubstats/internal/kvstore"
	"github.com/fcvanlose/clubstats/internal/metrics"
	"github.com/fcvanlose/clubstats/internal/notifier"
	"github.com/fcvanlose/clubstats/internal/pubsub"
	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/winners"
)

// Keys used in the local key/value store.
const (
	keyPastSeasons = "pastSeasons"
	keyCurrentWeek = "currentWeekOfMonth"
)

// Tracker owns the club's season/week bookkeeping: the current season
// descriptor, the week of the month, the in-memory roster snapshot and the
// past-seasons archive. All mutation goes through its methods; the mutex
// guards the descriptor, week, roster and generation counter.
type Tracker struct {
	standings standings.StandingsClient
	winners   winners.WinnersClient
	kv        kvstore.KeyValueStore
	audit     archive.Store
	pubsub    pubsub.PubSubClient
	notifier  notifier.Notifier
	metrics   metrics.Metrics
	interval  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	current season.Descriptor
	week    int
	roster  []standings.PlayerSeasonRecord
	// generation is bumped on every rollover so roster fetches that were in
	// flight when the season changed are dropped instead of installed.
	generation uint64
}
