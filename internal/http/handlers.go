package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"io"

	"github.com/charmbracelet/log"
	"github.com/fcvanlose/clubstats/internal/standings"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear local state")
		if err := s.KV.Clear(); err != nil {
			log.Error("Failed to clear local state", "error", err)
			http.Error(w, "Failed to clear state", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "State cleared!")
		log.Info("Local state cleared successfully")
	}
}

// StandingsHandler serves the roster for a season, freshly loaded from the
// standings API. A fetch failure is a gateway error; roster loading is
// blocking for callers.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonKey := r.URL.Query().Get("season")
		if seasonKey == "" {
			seasonKey = s.Tracker.CurrentSeasonKey()
		}

		records, err := s.Tracker.LoadRoster(seasonKey)
		if err != nil {
			var fetchErr *standings.FetchError
			if errors.As(err, &fetchErr) {
				log.Error("Failed to fetch standings", "error", err, "season", seasonKey)
				http.Error(w, "Failed to fetch standings", http.StatusBadGateway)
				return
			}
			http.Error(w, "Invalid season", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// WeeklyWinnersHandler serves the weekly winners for a (season, week),
// reconciled with the remote cache.
func (s *Server) WeeklyWinnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonKey := r.URL.Query().Get("season")
		if seasonKey == "" {
			seasonKey = s.Tracker.CurrentSeasonKey()
		}
		week := s.Tracker.CurrentWeek()
		if weekStr := r.URL.Query().Get("week"); weekStr != "" {
			parsed, err := strconv.Atoi(weekStr)
			if err != nil || parsed < 1 || parsed > 4 {
				http.Error(w, "Invalid week", http.StatusBadRequest)
				return
			}
			week = parsed
		}

		roster, err := s.Tracker.LoadRoster(seasonKey)
		if err != nil {
			var fetchErr *standings.FetchError
			if errors.As(err, &fetchErr) {
				log.Error("Failed to fetch standings", "error", err, "season", seasonKey)
				http.Error(w, "Failed to fetch standings", http.StatusBadGateway)
				return
			}
			http.Error(w, "Invalid season", http.StatusBadRequest)
			return
		}

		winners, err := s.Tracker.GetOrComputeWeeklyWinners(seasonKey, week, roster)
		if err != nil {
			http.Error(w, "Failed to resolve weekly winners", http.StatusInternalServerError)
			log.Error("Failed to resolve weekly winners", "error", err, "season", seasonKey, "week", week)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(winners); err != nil {
			log.Error("Failed to encode weekly winners to JSON", "error", err)
		}
	}
}

// StatUpdateHandler forwards partial counter patches to the standings API and
// applies them to the in-memory roster.
func (s *Server) StatUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var patches []standings.PlayerStatPatch
		if err := json.NewDecoder(r.Body).Decode(&patches); err != nil {
			log.Error("Failed to decode stat update body", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		for _, patch := range patches {
			if isDryRun {
				log.Info("[Dry Run] Would forward stat update", "playerID", patch.ID)
				continue
			}
			if _, err := s.Standings.UpdatePlayerStats(patch.ID, patch.StatPatch); err != nil {
				log.Error("Failed to forward stat update", "error", err, "playerID", patch.ID)
				http.Error(w, "Failed to forward stat update", http.StatusBadGateway)
				return
			}
		}

		if err := s.Tracker.OnStatUpdate(patches, isDryRun); err != nil {
			log.Error("Failed to apply stat update", "error", err)
			http.Error(w, "Failed to apply stat update", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// RolloverHandler triggers a manual rollover check.
func (s *Server) RolloverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		isDryRun := isDryRunFromContext(r)
		ev := s.Tracker.Tick(isDryRun)

		response := map[string]any{
			"rolledOver": ev != nil,
			"season":     s.Tracker.CurrentSeasonKey(),
			"week":       s.Tracker.CurrentWeek(),
		}
		if ev != nil {
			response["event"] = ev
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error("Failed to encode rollover response", "error", err)
		}
	}
}

// ArchiveHandler serves the past-seasons list. With all=true it serves the
// unbounded audit log instead of the capped list.
func (s *Server) ArchiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("all") == "true" {
			entries, err := s.Audit.ListRollovers()
			if err != nil {
				http.Error(w, "Failed to list rollovers", http.StatusInternalServerError)
				log.Error("Failed to list rollovers", "error", err)
				return
			}
			if err := json.NewEncoder(w).Encode(entries); err != nil {
				log.Error("Failed to encode rollovers to JSON", "error", err)
			}
			return
		}

		past, err := s.Tracker.PastSeasons()
		if err != nil {
			http.Error(w, "Failed to read past seasons", http.StatusInternalServerError)
			log.Error("Failed to read past seasons", "error", err)
			return
		}
		if err := json.NewEncoder(w).Encode(past); err != nil {
			log.Error("Failed to encode past seasons to JSON", "error", err)
		}
	}
}

// WeekHandler serves the current season key and week of the month.
func (s *Server) WeekHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"season": s.Tracker.CurrentSeasonKey(),
			"week":   s.Tracker.CurrentWeek(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error("Failed to encode week response", "error", err)
		}
	}
}

// RosterChangedHandler is the Pub/Sub push ingress for roster-changed events.
func (s *Server) RosterChangedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received roster changed message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
				// You can add other fields if needed
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		envelope, err := s.pubsub.ProcessMessage(rawData)
		if err != nil {
			http.Error(w, "Invalid message", http.StatusBadRequest)
			return
		}
		var patches []standings.PlayerStatPatch
		if err := s.pubsub.DecodePayload(envelope, &patches); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Tracker.OnStatUpdate(patches, isDryRun); err != nil {
			log.Error("Failed to apply roster change", "error", err)
			http.Error(w, "Failed to apply roster change", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
