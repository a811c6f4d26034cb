package main

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/database"
	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "padel.db",
		"MIGRATIONS_DIR": "./migrations",
		"SEED_MATCHES":   "500",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "SEED_MATCHES", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

var seedPlayers = []string{
	"Seeder Player A",
	"Seeder Player B",
	"Seeder Player C",
	"Seeder Player D",
	"Seeder Player E",
	"Seeder Player F",
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	numMatches, err := strconv.Atoi(cfg["SEED_MATCHES"])
	if err != nil || numMatches <= 0 {
		log.Fatalf("SEED_MATCHES must be a positive number, got %q", cfg["SEED_MATCHES"])
	}

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	store := club.New(db)

	log.Info("Preparing to insert dummy matches...", "total", numMatches)
	startTime := time.Now()
	days := make(map[string][]string)

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		players := rand.Perm(len(seedPlayers))[:4]
		draft := ledger.MatchDraft{
			Team1Players: []string{seedPlayers[players[0]], seedPlayers[players[1]]},
			Team2Players: []string{seedPlayers[players[2]], seedPlayers[players[3]]},
			ScoreTeam1:   strconv.Itoa(rand.Intn(7)),
			ScoreTeam2:   strconv.Itoa(rand.Intn(7)),
			Date:         matchTime.Format(ledger.DateLayout),
			Comment:      "Seeded match",
		}

		match, err := ledger.NewMatch(draft, "seeder", rand.Intn(10) == 0, matchTime.UTC())
		if err != nil {
			log.Fatalf("Seeded draft rejected: %s", err)
		}
		if _, err := store.CreateMatch(&match); err != nil {
			log.Fatalf("Failed to insert match: %s", err)
		}
		days[draft.Date] = append(days[draft.Date], draft.Team1Players...)

		if (i+1)%100 == 0 || (i+1) == numMatches {
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	var toggles int
	for date, players := range days {
		for _, player := range players {
			if rand.Intn(2) == 0 {
				continue
			}
			if _, err := store.SetPaymentStatus(date, player, true, "seeder", time.Now().UTC()); err != nil {
				log.Fatalf("Failed to set payment status: %s", err)
			}
			toggles++
		}
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration, "payments", toggles)
}
