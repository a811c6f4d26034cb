package http

import (
	"net/http"

	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/config"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/notifier"
	"github.com/mauv0809/padel-ledger/internal/playtomic"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
)

type Server struct {
	Store          club.ClubStore
	Scoreboard     *scoreboard.Scoreboard
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Importer       *playtomic.Importer
	Notifier       notifier.Notifier
	Mapper         *club.PlayerMapper
	Router         *http.ServeMux

	// Router wrapped with CORS.
	handler http.Handler
}
