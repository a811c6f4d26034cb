package playtomic_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/playtomic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecorder validates drafts the way the scoreboard does and keeps them.
type fakeRecorder struct {
	mu       sync.Mutex
	recorded []ledger.Match
	dryRuns  []bool
}

func (f *fakeRecorder) ImportMatch(draft ledger.MatchDraft, loadedBy, sourceID string, dryRun bool) (*ledger.Match, error) {
	m, err := ledger.NewMatch(draft, loadedBy, true, time.Now())
	if err != nil {
		return nil, err
	}
	m.SourceID = sourceID
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, m)
	f.dryRuns = append(f.dryRuns, dryRun)
	return &m, nil
}

var start = time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

func played(id string, start time.Time, sets ...[2]int) playtomic.PadelMatch {
	m := playtomic.PadelMatch{
		MatchID:       id,
		Start:         start,
		GameStatus:    playtomic.GameStatusPlayed,
		ResultsStatus: playtomic.ResultsStatusConfirmed,
		ResourceName:  "Court 2",
		Teams: []playtomic.Team{
			{ID: "0", Players: []playtomic.Player{{UserID: "a", Name: "Ana"}, {UserID: "b", Name: "Bea"}}},
			{ID: "1", Players: []playtomic.Player{{UserID: "c", Name: "Carla"}, {UserID: "d", Name: "Dani"}}},
		},
	}
	for _, s := range sets {
		m.Results = append(m.Results, playtomic.SetResult{Scores: map[string]int{"0": s[0], "1": s[1]}})
	}
	return m
}

func TestToDraft(t *testing.T) {
	draft, ok := playtomic.ToDraft(played("p1", start, [2]int{6, 3}, [2]int{3, 6}, [2]int{7, 5}))
	require.True(t, ok)
	assert.Equal(t, []string{"Ana", "Bea"}, draft.Team1Players)
	assert.Equal(t, []string{"Carla", "Dani"}, draft.Team2Players)
	assert.Equal(t, "2", draft.ScoreTeam1)
	assert.Equal(t, "1", draft.ScoreTeam2)
	assert.Equal(t, "2024-03-01", draft.Date)
	assert.Equal(t, "Court 2", draft.Comment)
}

func TestToDraft_SkipsUnusableMatches(t *testing.T) {
	pending := played("p1", start, [2]int{6, 3})
	pending.ResultsStatus = playtomic.ResultsStatusPending

	canceled := played("p2", start, [2]int{6, 3})
	canceled.GameStatus = playtomic.GameStatusCanceled

	singles := played("p3", start, [2]int{6, 3})
	singles.Teams[0].Players = singles.Teams[0].Players[:1]

	noResults := played("p4", start)

	for _, m := range []playtomic.PadelMatch{pending, canceled, singles, noResults} {
		_, ok := playtomic.ToDraft(m)
		assert.False(t, ok, "match %s should be skipped", m.MatchID)
	}
}

func TestImport(t *testing.T) {
	client := playtomic.NewMockClient()
	client.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{{MatchID: "new"}, {MatchID: "old"}, {MatchID: "broken"}, {MatchID: "pending"}, {MatchID: "early"}}, nil
	}
	client.GetSpecificMatchFunc = func(matchID string) (playtomic.PadelMatch, error) {
		switch matchID {
		case "broken":
			return playtomic.PadelMatch{}, errors.New("timeout")
		case "pending":
			m := played(matchID, start)
			m.ResultsStatus = playtomic.ResultsStatusPending
			return m, nil
		case "early":
			return played(matchID, start.Add(-time.Hour), [2]int{1, 6}), nil
		}
		return played(matchID, start, [2]int{6, 1}), nil
	}

	store := club.NewMock()
	store.GetMatchesFunc = func() ([]ledger.Match, error) {
		return []ledger.Match{{ID: "m1", SourceID: playtomic.SourceID("old"), Comment: "Court 2"}}, nil
	}
	recorder := &fakeRecorder{}
	m := metrics.NewMock()

	importer := playtomic.NewImporter(client, recorder, store, m, "tenant-1")
	result, err := importer.Import(context.Background(), start.AddDate(0, 0, -3), false)
	require.NoError(t, err)

	assert.Equal(t, playtomic.ImportResult{Found: 5, Imported: 2, Skipped: 2, Failed: 1}, result)
	assert.Equal(t, 1, m.ImportRuns())

	require.Len(t, client.GetMatchesCalls, 1)
	assert.Equal(t, []string{"tenant-1"}, client.GetMatchesCalls[0].TenantIDs)
	assert.Equal(t, "2024-02-27T00:00:00", client.GetMatchesCalls[0].FromStartDate)
	assert.NotContains(t, client.GetSpecificMatchCalls, "old", "imported matches are not fetched again")

	require.Len(t, recorder.recorded, 2)
	assert.Equal(t, "playtomic:early", recorder.recorded[0].SourceID, "oldest start first")
	assert.Equal(t, "Court 2", recorder.recorded[0].Comment)
	assert.Equal(t, ledger.WinnerTeam2, recorder.recorded[0].Winner)
	for _, rec := range recorder.recorded {
		assert.Equal(t, playtomic.ImportedBy, rec.LoadedBy)
		assert.True(t, rec.PendingConfirmation)
	}
}

func TestImport_SkipsDeletedImports(t *testing.T) {
	client := playtomic.NewMockClient()
	client.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{{MatchID: "gone"}, {MatchID: "legacy"}}, nil
	}
	store := club.NewMock()
	store.GetDeletionsFunc = func() ([]ledger.DeletionRecord, error) {
		return []ledger.DeletionRecord{
			{OriginalMatch: ledger.Match{SourceID: playtomic.SourceID("gone")}},
			// Deleted before sources had their own column.
			{OriginalMatch: ledger.Match{Comment: "playtomic:legacy Court 1"}},
		}, nil
	}
	recorder := &fakeRecorder{}

	result, err := playtomic.NewImporter(client, recorder, store, metrics.NewMock(), "t").Import(context.Background(), start, true)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, client.GetSpecificMatchCalls)
	assert.Empty(t, recorder.recorded)
}

func TestImport_EditedCommentKeepsMatchImported(t *testing.T) {
	client := playtomic.NewMockClient()
	client.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{{MatchID: "p1"}}, nil
	}
	store := club.NewMock()
	store.GetMatchesFunc = func() ([]ledger.Match, error) {
		return []ledger.Match{{ID: "m1", SourceID: playtomic.SourceID("p1"), Comment: "rewritten by a player"}}, nil
	}
	recorder := &fakeRecorder{}

	result, err := playtomic.NewImporter(client, recorder, store, metrics.NewMock(), "t").Import(context.Background(), start, false)
	require.NoError(t, err)
	assert.Equal(t, playtomic.ImportResult{Found: 1, Skipped: 1}, result)
	assert.Empty(t, recorder.recorded)
}

func TestImport_SearchFails(t *testing.T) {
	client := playtomic.NewMockClient()
	client.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return nil, errors.New("api down")
	}

	_, err := playtomic.NewImporter(client, &fakeRecorder{}, club.NewMock(), metrics.NewMock(), "t").Import(context.Background(), start, false)
	assert.ErrorContains(t, err, "api down")
}
