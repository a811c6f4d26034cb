package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/notifier"
	"github.com/mauv0809/padel-ledger/internal/stats"
	"github.com/slack-go/slack"
)

// leaderboardSize is how many players each leaderboard section shows.
const leaderboardSize = 5

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
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
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
		return "dry-run-channel", "dry-run-ts", nil
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
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchRecorded(match *ledger.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchRecorded(match), dryRun)
	return err
}

func (s *Notifier) SendMatchDeleted(record *ledger.DeletionRecord, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchDeleted(record), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(rankings stats.Rankings, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(rankings), dryRun)
	return err
}

func (s *Notifier) SendDailySummary(date string, day stats.DailySummary, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatDailySummary(date, day), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(rankings stats.Rankings) (any, error) {
	return s.formatLeaderboard(rankings), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(player string, summary stats.PlayerSummary) (any, error) {
	return s.formatPlayerStats(player, summary), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	return s.formatPlayerNotFound(query, suggestions), nil
}

// FormatDailySummaryResponse formats a day's summary for a slash command response.
func (s *Notifier) FormatDailySummaryResponse(date string, day stats.DailySummary) (any, error) {
	return s.formatDailySummary(date, day), nil
}

// formatMatchRecorded creates the Slack message for a newly recorded match using Block Kit.
func (s *Notifier) formatMatchRecorded(match *ledger.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match recorded! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("%s  %d - %d  %s",
		strings.Join(match.Team1Players, " & "),
		match.ScoreTeam1,
		match.ScoreTeam2,
		strings.Join(match.Team2Players, " & "),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	result := fmt.Sprintf("Result: %s won! 🏆", match.WinnerLabel)
	if match.Winner == ledger.WinnerDraw {
		result = "Result: Draw 🤝"
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", result, true, false), nil, nil))

	contextElements := []slack.MixedElement{
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s, loaded by %s", match.Date, match.LoadedBy), true, false),
	}
	if match.PendingConfirmation {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "⏳ Pending confirmation", true, false))
	}
	if match.Comment != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", match.Comment, true, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}

// formatMatchDeleted creates the Slack message for a match moved to the deletion log.
func (s *Notifier) formatMatchDeleted(record *ledger.DeletionRecord) slack.Message {
	m := record.OriginalMatch
	text := fmt.Sprintf("🗑️ %s deleted the match from %s: %s %d - %d %s",
		record.DeletedBy,
		m.Date,
		strings.Join(m.Team1Players, " & "),
		m.ScoreTeam1,
		m.ScoreTeam2,
		strings.Join(m.Team2Players, " & "),
	)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}

// formatLeaderboard creates a Slack message with the top of each ranking.
func (s *Notifier) formatLeaderboard(rankings stats.Rankings) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rankings.ByWinRate) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	sections := []struct {
		title string
		rows  []stats.RankedPlayer
		value func(stats.PlayerSummary) string
	}{
		{"Win %", rankings.ByWinRate, func(p stats.PlayerSummary) string {
			return fmt.Sprintf("%.2f%% (%d/%d)", p.WinPercentage, p.Won, p.Played)
		}},
		{"Most wins", rankings.ByWon, func(p stats.PlayerSummary) string { return fmt.Sprintf("%d", p.Won) }},
		{"Most played", rankings.ByPlayed, func(p stats.PlayerSummary) string { return fmt.Sprintf("%d", p.Played) }},
		{"Most losses", rankings.ByLost, func(p stats.PlayerSummary) string { return fmt.Sprintf("%d", p.Lost) }},
	}
	for _, section := range sections {
		lines := []string{fmt.Sprintf("*%s*", section.title)}
		for i, row := range top(section.rows, leaderboardSize) {
			lines = append(lines, fmt.Sprintf("%d. %s %s: %s", i+1, medal(i+1), row.Player, section.value(row.Stats)))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(player string, summary stats.PlayerSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", player)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Match Win %%*: %.2f%% (%d/%d)\n> *Won*: %d\n> *Lost*: %d",
		summary.WinPercentage,
		summary.Won,
		summary.Played,
		summary.Won,
		summary.Lost,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string, suggestions []string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	if len(suggestions) > 0 {
		text = fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Did you mean %s?", query, strings.Join(suggestions, ", "))
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// formatDailySummary lists the day's players with their results and payment status.
func (s *Notifier) formatDailySummary(date string, day stats.DailySummary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("📅 Summary for %s", date)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	if len(day.Summary) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches played on this day.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	players := make([]string, 0, len(day.Summary))
	for player := range day.Summary {
		players = append(players, player)
	}
	sort.Strings(players)

	lines := make([]string, 0, len(players))
	for _, player := range players {
		p := day.Summary[player]
		paid := "❌ unpaid"
		if p.Paid {
			paid = "✅ paid"
		}
		lines = append(lines, fmt.Sprintf("• %s: %dW %dL of %d (%s)", player, p.Won, p.Lost, p.Played, paid))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	var active, deleted int
	for _, m := range day.Matches {
		if m.IsDeleted {
			deleted++
		} else {
			active++
		}
	}
	footer := fmt.Sprintf("%d matches", active)
	if deleted > 0 {
		footer += fmt.Sprintf(", %d deleted", deleted)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", footer, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func top(rows []stats.RankedPlayer, n int) []stats.RankedPlayer {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}
