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

func NewServer(trk *tracker.Tracker, standingsClient standings.StandingsClient, kv kvstore.KeyValueStore, audit archive.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tracker:        trk,
		Standings:      standingsClient,
		KV:             kv,
		Audit:          audit,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStateHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/weekly-winners", Chain(s.WeeklyWinnersHandler(), paramsMiddleware))
	s.Router.Handle("/stat-update", Chain(s.StatUpdateHandler(), paramsMiddleware))
	s.Router.Handle("/rollover", Chain(s.RolloverHandler(), paramsMiddleware))
	s.Router.Handle("/archive", Chain(s.ArchiveHandler(), paramsMiddleware))
	s.Router.Handle("/week", Chain(s.WeekHandler(), paramsMiddleware))
	s.Router.Handle("/roster-changed", Chain(s.RosterChangedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
