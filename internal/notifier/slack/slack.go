package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fcvanlose/clubstats/internal/metrics"
	"github.com/fcvanlose/clubstats/internal/notifier"
	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/fcvanlose/clubstats/internal/standings"
	"github.com/fcvanlose/clubstats/internal/winners"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendWeeklyWinners(seasonKey string, week int, w winners.WeeklyWinners, dryRun bool) error {
	msg := s.formatWeeklyWinners(seasonKey, week, w)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendSeasonRollover(ev *season.RolloverEvent, dryRun bool) error {
	msg := s.formatSeasonRollover(ev)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(roster []standings.PlayerSeasonRecord, dryRun bool) error {
	msg := s.formatLeaderboard(roster)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatWeeklyWinners creates the Slack message for a refreshed weekly
// winners cache using Block Kit.
func (s *Notifier) formatWeeklyWinners(seasonKey string, week int, w winners.WeeklyWinners) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Winners of the week! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Season %s, week %d", seasonKey, week)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if w.MVP == nil && w.TopScorer == nil {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No winners yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	if w.MVP != nil {
		mvpText := fmt.Sprintf("🏅 MVP: %s (%d pts)", w.MVP.Name, w.MVP.Points)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", mvpText, true, false), nil, nil))
	}
	if w.TopScorer != nil {
		scorerText := fmt.Sprintf("⚽ Top Scorer: %s (%d goals)", w.TopScorer.Name, w.TopScorer.Goals)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scorerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSeasonRollover creates the Slack message announcing a new season.
func (s *Notifier) formatSeasonRollover(ev *season.RolloverEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔄 New season started! 🔄", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Season %s has ended. Welcome to season %s!",
		ev.Outgoing.SeasonKey,
		ev.NewSeason.Key(),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Context - For simpler, single-line info.
	archivedText := fmt.Sprintf("%s ran %s - %s",
		ev.Outgoing.SeasonKey,
		ev.Outgoing.StartDate.Format("02 Jan 2006"),
		ev.Outgoing.EndDate.Format("02 Jan 2006"),
	)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", archivedText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the season leaderboard.
func (s *Notifier) formatLeaderboard(roster []standings.PlayerSeasonRecord) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Season Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(roster) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No standings available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, rec := range roster {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d | Played: %d (%d/%d/%d) | Goals: %d | Assists: %d",
			rank,
			medal,
			rec.Name,
			rec.Points,
			rec.Played,
			rec.Won,
			rec.Drawn,
			rec.Lost,
			rec.Goals,
			rec.Assists,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
