package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/clients/espn_client"
	"github.com/tbrandt/draftkit/go/internal/draftlog"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
	"github.com/tbrandt/draftkit/go/internal/pool"
	"github.com/tbrandt/draftkit/go/internal/session"
	"github.com/tbrandt/draftkit/go/internal/session/statestore"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	config, err := loadConfig(getEnv("DRAFTKIT_CONFIG", "draftkit.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	settings := fetchSettings(ctx, config)

	format := league.NewFormat(settings)
	log.Info().
		Str("league", format.Name()).
		Int("teams", format.NumTeams()).
		Str("scoring", string(format.Scoring())).
		Bool("qb_flex", format.HasQBFlex()).
		Msg("league format ready")

	rows, err := pool.LoadCSV(config.Data.RankingsCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Data.RankingsCSV).Msg("failed to load rankings")
	}
	playerPool, err := pool.Build(format, rows, pool.DefaultValueModel())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build player pool")
	}
	log.Info().Int("players", playerPool.Size()).Msg("player pool ready")

	store := statestore.New(config.Data.StateFile, clockwork.NewRealClock())

	var journal session.Journal
	if j, err := draftlog.Open(config.Data.JournalFile); err != nil {
		log.Warn().Err(err).Msg("draft journal unavailable, continuing without it")
	} else {
		defer j.Close()
		journal = j
	}

	sess := session.New(format, playerPool, store, journal, clockwork.NewRealClock())
	if err := sess.LoadState(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Msg("no saved draft state, starting fresh")
		} else {
			log.Fatal().Err(err).Msg("failed to load saved draft state")
		}
	} else {
		log.Info().Int("pick", sess.CurrentPick()).Msg("resumed saved draft")
	}

	if err := runREPL(ctx, sess, config.Recommendations, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("draft loop failed")
	}
}

// fetchSettings pulls league settings from ESPN when a league id is
// configured. Any failure falls back to the default format so a draft can
// always start.
func fetchSettings(ctx context.Context, config *Config) models.LeagueSettings {
	if config.League.ID == 0 {
		log.Info().Msg("no league id configured, using default league settings")
		return league.DefaultSettings()
	}

	client := espn_client.NewESPNClient(os.Getenv("ESPN_SWID"), os.Getenv("ESPN_S2"))
	settings, err := client.FetchLeagueSettings(ctx, config.League.ID, config.League.Year)
	if err != nil {
		log.Warn().Err(err).Int("league_id", config.League.ID).
			Msg("failed to fetch league settings, using defaults")
		return league.DefaultSettings()
	}
	return *settings
}
