package http

import (
	"net/http"

	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/config"
	"github.com/mauv0809/padel-ledger/internal/http/handlers"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/notifier"
	"github.com/mauv0809/padel-ledger/internal/playtomic"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
	"github.com/rs/cors"
)

func NewServer(store club.ClubStore, sb *scoreboard.Scoreboard, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, importer *playtomic.Importer, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Scoreboard:     sb,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Importer:       importer,
		Notifier:       notifier,
		Mapper:         club.NewPlayerMapper(store),
		Router:         http.NewServeMux(),
	}

	server.routes()
	server.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(handlers.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifier(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(handlers.ClearStoreHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))

	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(handlers.RecordMatchHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}", Chain(handlers.EditMatchHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}", Chain(handlers.DeleteMatchHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/confirm", Chain(handlers.ConfirmMatchHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("POST /payments/toggle", Chain(handlers.TogglePaymentHandler(s.Scoreboard), paramsMiddleware))

	s.Router.Handle("GET /summary/daily", Chain(handlers.DailySummaryHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("GET /rankings", Chain(handlers.RankingsHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("GET /scoreboard", Chain(handlers.ScoreboardHandler(s.Scoreboard), paramsMiddleware))

	s.Router.Handle("POST /import/playtomic", Chain(handlers.ImportPlaytomicHandler(s.Importer), paramsMiddleware))
	s.Router.Handle("POST /announce/daily", Chain(handlers.AnnounceDailyHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("POST /announce/leaderboard", Chain(handlers.AnnounceLeaderboardHandler(s.Scoreboard), paramsMiddleware))
	s.Router.Handle("POST /pubsub/notify", Chain(handlers.NotifyEventHandler(s.Scoreboard), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Scoreboard, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Scoreboard, s.Mapper, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/daily", Chain(handlers.DailyCommandHandler(s.Scoreboard, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
