package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	filterPlayer string
	filterFrom   string
	filterTo     string
	filterYear   string
	filterMonth  string
	dailyDate    string
	importDays   int
)

func init() {
	for _, cmd := range []*cobra.Command{matchesCmd, rankingsCmd, dailyCmd} {
		cmd.Flags().StringVar(&filterPlayer, "player", "", "Only matches with this player")
		cmd.Flags().StringVar(&filterFrom, "from", "", "First day to include (YYYY-MM-DD)")
		cmd.Flags().StringVar(&filterTo, "to", "", "Last day to include (YYYY-MM-DD)")
		cmd.Flags().StringVar(&filterYear, "year", "", "Only matches in this year")
		cmd.Flags().StringVar(&filterMonth, "month", "", "Only matches in this month (1-12)")
	}
	announceDailyCmd.Flags().StringVar(&dailyDate, "date", "", "Day to announce, today by default")
	importCmd.Flags().IntVar(&importDays, "days", 0, "How many days back to import")

	announceCmd.AddCommand(announceDailyCmd)
	announceCmd.AddCommand(announceLeaderboardCmd)

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List every player that appears in a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the active matches, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches", filterQuery())
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the four leaderboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/rankings", filterQuery())
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the per-day summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/summary/daily", filterQuery())
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import played matches from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("days", strconv.Itoa(importDays))
		return performRequest(http.MethodPost, "/import/playtomic", q)
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post summaries to Slack",
}

var announceDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Post a day's summary to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if dailyDate != "" {
			q.Set("date", dailyDate)
		}
		return performRequest(http.MethodPost, "/announce/daily", q)
	},
}

var announceLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Post the leaderboard to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/announce/leaderboard", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func filterQuery() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"player": filterPlayer,
		"from":   filterFrom,
		"to":     filterTo,
		"year":   filterYear,
		"month":  filterMonth,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

func performRequest(method, endpoint string, query url.Values) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
