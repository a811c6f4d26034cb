package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/config"
	"github.com/mauv0809/padel-ledger/internal/database"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/notifier"
	"github.com/mauv0809/padel-ledger/internal/playtomic"
	"github.com/mauv0809/padel-ledger/internal/pubsub"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
	"github.com/mauv0809/padel-ledger/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, playtomicClient playtomic.PlaytomicClient, notifier notifier.Notifier, slackSigningSecret string) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	cfg := config.Config{
		AllowedOrigins: []string{"*"},
		Slack:          config.SlackConfig{SigningSecret: slackSigningSecret},
		Playtomic:      config.PlaytomicConfig{TenantID: "tenant-1"},
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	sb := scoreboard.New(clubStore, notifier, metricsSvc, pubsub.NewMock(), false)
	importer := playtomic.NewImporter(playtomicClient, sb, clubStore, metricsSvc, cfg.Playtomic.TenantID)

	server := NewServer(clubStore, sb, metricsSvc, metricsHandler, cfg, importer, notifier)
	return server, dbTeardown
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest(http.MethodPost, targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func doJSON(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func matchBody(date string, team1, team2 []string, s1, s2 any) map[string]any {
	return map[string]any{
		"team1_players": team1,
		"team2_players": team2,
		"score_team1":   s1,
		"score_team2":   s2,
		"date":          date,
		"loaded_by":     team1[0],
	}
}

func recordMatch(t *testing.T, server *Server, body map[string]any) ledger.Match {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/matches", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var m ledger.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	rr := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestRecordAndListMatches(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	m := recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, "4"))
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, ledger.WinnerTeam1, m.Winner)
	assert.Equal(t, "Team 1 (Ana & Bea)", m.WinnerLabel)
	assert.Len(t, mockNotifier.SendMatchRecordedCalls, 1)

	recordMatch(t, server, matchBody("2024-04-02", []string{"Eva", "Bea"}, []string{"Carla", "Dani"}, "1", "6"))

	rr := doJSON(t, server, http.MethodGet, "/matches?player=Ana", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var matches []ledger.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, m.ID, matches[0].ID)

	rr = doJSON(t, server, http.MethodGet, "/matches?month=4", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "2024-04-02", matches[0].Date)
}

func TestRecordMatch_Rejected(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	tests := []struct {
		name   string
		body   any
		status int
		reason string
	}{
		{"player on both teams", matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Ana", "Dani"}, 6, 4), http.StatusBadRequest, "PlayerOnBothTeams"},
		{"negative score", matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, -1, 4), http.StatusBadRequest, "InvalidScore"},
		{"fractional score", matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, "6", "4.5"), http.StatusBadRequest, "InvalidScore"},
		{"missing date", matchBody("", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4), http.StatusBadRequest, "MissingFields"},
		{"not json", "nope", http.StatusBadRequest, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, server, http.MethodPost, "/matches", tc.body)
			assert.Equal(t, tc.status, rr.Code)
			if tc.reason != "" {
				var resp struct {
					Reason string `json:"reason"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tc.reason, resp.Reason)
			}
		})
	}

	snap, err := server.Store.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Matches, "nothing is written for rejected matches")
}

func TestRecordMatch_DryRun(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/matches?dry_run=true", matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))
	assert.Equal(t, http.StatusCreated, rr.Code)

	snap, err := server.Store.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Matches)
}

func TestEditMatchHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	m := recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	edit := matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 3, 6)
	edit["edited_by"] = "Carla"
	rr := doJSON(t, server, http.MethodPut, "/matches/"+m.ID, edit)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var edited ledger.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &edited))
	assert.Equal(t, ledger.WinnerTeam2, edited.Winner)
	require.Len(t, edited.EditHistory, 1)
	assert.Equal(t, "Carla", edited.EditHistory[0].EditedBy)

	rr = doJSON(t, server, http.MethodPut, "/matches/missing", edit)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteAndConfirmMatch(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	pending := matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4)
	delete(pending, "loaded_by")
	m := recordMatch(t, server, pending)
	assert.True(t, m.PendingConfirmation)
	assert.Equal(t, scoreboard.UnverifiedRecorder, m.LoadedBy)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+m.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got, err := server.Store.GetMatch(m.ID)
	require.NoError(t, err)
	assert.False(t, got.PendingConfirmation)

	rr = doJSON(t, server, http.MethodDelete, "/matches/"+m.ID+"?by=Bea", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendMatchDeletedCalls, 1)

	rr = doJSON(t, server, http.MethodDelete, "/matches/"+m.ID+"?by=Bea", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/summary/daily", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var days map[string]stats.DailySummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &days))
	day := days["2024-03-01"]
	require.Len(t, day.Matches, 1)
	assert.True(t, day.Matches[0].IsDeleted)
	assert.Equal(t, "Bea", day.Matches[0].DeletedBy)
	assert.Empty(t, day.Summary, "deleted matches do not count")
}

func TestTogglePaymentHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	body := map[string]string{"date": "2024-03-01", "player": "Ana", "changed_by": "Bea"}
	rr := doJSON(t, server, http.MethodPost, "/payments/toggle", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var status ledger.PaymentStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.True(t, status.Paid)

	rr = doJSON(t, server, http.MethodGet, "/summary/daily?from=2024-03-01&to=2024-03-01", nil)
	var days map[string]stats.DailySummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &days))
	ana := days["2024-03-01"].Summary["Ana"]
	assert.True(t, ana.Paid)
	require.Len(t, ana.PaymentHistory, 1)
	assert.Equal(t, "Bea", ana.PaymentHistory[0].ChangedBy)

	rr = doJSON(t, server, http.MethodPost, "/payments/toggle", map[string]string{"date": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRankingsAndScoreboard(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))
	recordMatch(t, server, matchBody("2024-03-02", []string{"Ana", "Carla"}, []string{"Bea", "Dani"}, 6, 2))

	rr := doJSON(t, server, http.MethodGet, "/rankings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var rankings stats.Rankings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rankings))
	require.Len(t, rankings.ByWinRate, 4)
	assert.Equal(t, "Ana", rankings.ByWinRate[0].Player)
	assert.Equal(t, 100.0, rankings.ByWinRate[0].Stats.WinPercentage)
	assert.Equal(t, "Dani", rankings.ByLost[0].Player)

	rr = doJSON(t, server, http.MethodGet, "/scoreboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var view scoreboard.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Daily, 2)
	assert.Len(t, view.Rankings.ByPlayed, 4)
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatPlayerStatsResponseFunc = func(player string, summary stats.PlayerSummary) (any, error) {
		return slack.Message{}, nil
	}
	mockNotifier.FormatPlayerNotFoundResponseFunc = func(query string, suggestions []string) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, testSlackSigningSecret)
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Morten Voss", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	t.Run("handles found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "  morten   voss ")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Morten Voss", mockNotifier.LastPlayerStatsQuery)
	})

	t.Run("handles not found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Morten Vos")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Morten Vos", mockNotifier.LastNotFoundQuery)
		assert.Contains(t, mockNotifier.LastNotFoundSuggested, "Morten Voss")
	})

	t.Run("handles missing player name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{}, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Morten")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Signature", "v0=invalid-signature")

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Morten")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with outdated timestamp", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Morten")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10))

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestLeaderboardAndDailyCommands(t *testing.T) {
	mockNotifier := notifier.NewMock()
	var gotRankings stats.Rankings
	mockNotifier.FormatLeaderboardResponseFunc = func(rankings stats.Rankings) (any, error) {
		gotRankings = rankings
		return slack.Message{}, nil
	}
	var gotDay stats.DailySummary
	mockNotifier.FormatDailySummaryResponseFunc = func(date string, day stats.DailySummary) (any, error) {
		gotDay = day
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, gotRankings.ByPlayed, 4)

	form := url.Values{}
	form.Set("text", "2024-03-01")
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/daily", form, ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, gotDay.Summary, 4)

	form.Set("text", "yesterday")
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/daily", form, ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestImportPlaytomicHandler(t *testing.T) {
	mockClient := playtomic.NewMockClient()
	mockClient.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{{MatchID: "p1"}}, nil
	}
	mockClient.GetSpecificMatchFunc = func(matchID string) (playtomic.PadelMatch, error) {
		return playtomic.PadelMatch{
			MatchID:       matchID,
			Start:         time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC),
			GameStatus:    playtomic.GameStatusPlayed,
			ResultsStatus: playtomic.ResultsStatusConfirmed,
			Teams: []playtomic.Team{
				{ID: "0", Players: []playtomic.Player{{Name: "Ana"}, {Name: "Bea"}}},
				{ID: "1", Players: []playtomic.Player{{Name: "Carla"}, {Name: "Dani"}}},
			},
			Results: []playtomic.SetResult{{Scores: map[string]int{"0": 6, "1": 2}}},
		}, nil
	}
	server, teardown := setupTestServer(t, mockClient, notifier.NewMock(), "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/import/playtomic?days=7", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var result playtomic.ImportResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, playtomic.ImportResult{Found: 1, Imported: 1}, result)

	snap, err := server.Store.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Matches, 1)
	imported := snap.Matches[0]
	assert.Equal(t, playtomic.ImportedBy, imported.LoadedBy)
	assert.Equal(t, "playtomic:p1", imported.SourceID)
	assert.True(t, imported.PendingConfirmation)

	// Rewriting the comment does not make the match look new.
	edit := matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 1, 0)
	edit["comment"] = "great match"
	edit["edited_by"] = "Ana"
	rr = doJSON(t, server, http.MethodPut, "/matches/"+imported.ID, edit)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, server, http.MethodPost, "/import/playtomic?days=7", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, playtomic.ImportResult{Found: 1, Skipped: 1}, result)

	snap, err = server.Store.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Matches, 1)
	assert.Equal(t, "great match", snap.Matches[0].Comment)
}

func TestNotifyEventHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	data, err := msgpack.Marshal(pubsub.MatchEvent{Match: ledger.Match{ID: "m1", Date: "2024-03-01"}, Actor: "Ana"})
	require.NoError(t, err)
	push := map[string]any{
		"subscription": "projects/p/subscriptions/notify",
		"message": map[string]any{
			"data":       base64.StdEncoding.EncodeToString(data),
			"attributes": map[string]string{"event": string(pubsub.EventMatchRecorded)},
		},
	}

	rr := doJSON(t, server, http.MethodPost, "/pubsub/notify", push)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendMatchRecordedCalls, 1)
	assert.Equal(t, "m1", mockNotifier.SendMatchRecordedCalls[0].ID)

	push["message"] = map[string]any{"data": "%%%"}
	rr = doJSON(t, server, http.MethodPost, "/pubsub/notify", push)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnnounceHandlers(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/announce/daily?date=2024-03-01&dry_run=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, server, http.MethodPost, "/announce/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, []string{"2024-03-01"}, mockNotifier.SendDailySummaryCalls)
	assert.Len(t, mockNotifier.SendLeaderboardCalls, 1)
	assert.Equal(t, []bool{true, false}, mockNotifier.DryRuns)
}

func TestMetricsAndCORS(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	rr := doJSON(t, server, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "padel_matches_recorded_total 1")

	req, err := http.NewRequest(http.MethodOptions, "/matches", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://scoreboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	recordMatch(t, server, matchBody("2024-03-01", []string{"Ana", "Bea"}, []string{"Carla", "Dani"}, 6, 4))

	rr := doJSON(t, server, http.MethodPost, "/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap, err := server.Store.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Matches)
}
