package playtomic

import (
	"context"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// PlaytomicClient defines the interface for interacting with the Playtomic API.
// This allows for mock implementations to be used in tests.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error)
}

// Recorder stores an imported match through the regular write path.
type Recorder interface {
	ImportMatch(draft ledger.MatchDraft, loadedBy, sourceID string, dryRun bool) (*ledger.Match, error)
}

// Ledger gives access to the matches already recorded, active or deleted.
type Ledger interface {
	Snapshot() (ledger.Snapshot, error)
}
