package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors for the tracker.
type Service struct {
	RolloverChecks           prometheus.Counter
	RolloversDetected        prometheus.Counter
	RosterLoads              prometheus.Counter
	RosterLoadFailures       prometheus.Counter
	WinnersCacheHits         prometheus.Counter
	WinnersCacheMisses       prometheus.Counter
	WinnersCacheWriteFailure prometheus.Counter
	StatUpdates              prometheus.Counter
	NotifSent                prometheus.Counter
	NotifFailed              prometheus.Counter
	StartupTimeSeconds       prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RolloverChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_rollover_checks_total",
			Help: "The total number of season rollover checks performed.",
		}),
		RolloversDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_rollovers_detected_total",
			Help: "The total number of season rollovers detected and archived.",
		}),
		RosterLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_roster_loads_total",
			Help: "The total number of successful roster loads from the standings API.",
		}),
		RosterLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_roster_load_failures_total",
			Help: "The total number of failed roster loads.",
		}),
		WinnersCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_winners_cache_hits_total",
			Help: "The total number of weekly-winners cache hits.",
		}),
		WinnersCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_winners_cache_misses_total",
			Help: "The total number of weekly-winners cache misses (including read failures).",
		}),
		WinnersCacheWriteFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_winners_cache_write_failures_total",
			Help: "The total number of failed weekly-winners upserts.",
		}),
		StatUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_stat_updates_total",
			Help: "The total number of stat updates merged into the roster.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubstats_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RolloverChecks,
		s.RolloversDetected,
		s.RosterLoads,
		s.RosterLoadFailures,
		s.WinnersCacheHits,
		s.WinnersCacheMisses,
		s.WinnersCacheWriteFailure,
		s.StatUpdates,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRolloverChecks() {
	s.RolloverChecks.Inc()
}

func (s *Service) IncRolloversDetected() {
	s.RolloversDetected.Inc()
}

func (s *Service) IncRosterLoads() {
	s.RosterLoads.Inc()
}

func (s *Service) IncRosterLoadFailures() {
	s.RosterLoadFailures.Inc()
}

func (s *Service) IncWinnersCacheHits() {
	s.WinnersCacheHits.Inc()
}

func (s *Service) IncWinnersCacheMisses() {
	s.WinnersCacheMisses.Inc()
}

func (s *Service) IncWinnersCacheWriteFailures() {
	s.WinnersCacheWriteFailure.Inc()
}

func (s *Service) IncStatUpdates() {
	s.StatUpdates.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
