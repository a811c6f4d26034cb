package notifier

import (
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For ledger writes
	SendMatchRecorded(match *ledger.Match, dryRun bool) error
	SendMatchDeleted(record *ledger.DeletionRecord, dryRun bool) error
	// For scheduled and on-demand summaries
	SendLeaderboard(rankings stats.Rankings, dryRun bool) error
	SendDailySummary(date string, day stats.DailySummary, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(rankings stats.Rankings) (any, error)
	FormatPlayerStatsResponse(player string, summary stats.PlayerSummary) (any, error)
	FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error)
	FormatDailySummaryResponse(date string, day stats.DailySummary) (any, error)
}
