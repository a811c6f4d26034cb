package playtomic

import (
	"time"

	"github.com/mauv0809/padel-ledger/internal/metrics"
)

// ImportedBy is the loadedBy value of every match created by the importer.
const ImportedBy = "playtomic"

// sourcePrefix namespaces Playtomic match IDs in ledger.Match.SourceID.
const sourcePrefix = "playtomic:"

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch is a Playtomic booking with its teams and set results.
type PadelMatch struct {
	MatchID       string
	OwnerID       string
	Start         time.Time
	GameStatus    GameStatus
	ResultsStatus ResultsStatus
	Teams         []Team
	Results       []SetResult
	ResourceName  string
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// ResultsStatus defines the status of the match results.
type ResultsStatus string

const (
	ResultsStatusPending   ResultsStatus = "PENDING"
	ResultsStatusConfirmed ResultsStatus = "CONFIRMED"
	ResultsStatusInvalid   ResultsStatus = "INVALID"
)

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
}

// SetResult represents the result of a single set, keyed by team ID.
type SetResult struct {
	Name   string
	Scores map[string]int
}

// Importer copies played Playtomic matches of one club into the ledger.
type Importer struct {
	client   PlaytomicClient
	recorder Recorder
	ledger   Ledger
	metrics  metrics.Metrics
	tenantID string

	// limit caps concurrent GetSpecificMatch calls.
	limit int
}

// ImportResult counts what one import run did.
type ImportResult struct {
	Found    int `json:"found"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// playtomicMatchResponse defines the structure for the JSON response from the Playtomic API for a single match.
type playtomicMatchResponse struct {
	OwnerID       string                  `json:"owner_id"`
	StartDate     string                  `json:"start_date"`
	GameStatus    string                  `json:"game_status"`
	Teams         []playtomicTeamResponse `json:"teams"`
	Results       []playtomicResult       `json:"results"`
	ResultsStatus string                  `json:"results_status"`
	ResourceName  string                  `json:"resource_name"`
}

type playtomicResult struct {
	Name   string               `json:"name"`
	Scores []playtomicTeamScore `json:"scores"`
}

type playtomicTeamScore struct {
	TeamID string `json:"team_id"`
	Score  int    `json:"score"`
}

type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

type playtomicPlayerResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
