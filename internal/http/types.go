package http

import (
	"net/http"

	"github.com/fcvanlose/clubstats/internal/archive"
	"github.com/fcvanlose/clubstats/internal/config"
	"github.com/fcvanlose/clubstats/internal/kvstore"
	"github.com/fcvanlose/clubstats/internal/metrics"
	"github.com/fcvanlose/clubstats/internal/notifier"
	"github.com/fcvanlose/clubstats/internal/pubsub"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/tracker"
)

type Server struct {
	Tracker        *tracker.Tracker
	Standings      standings.StandingsClient
	KV             kvstore.KeyValueStore
	Audit          archive.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
