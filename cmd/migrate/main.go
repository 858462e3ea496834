package main

import (
	"flag"
	"os"

	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	down := flag.Int("down", 0, "roll back this many migrations instead of applying pending ones")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	if *down > 0 {
		if err := postgres.RollbackMigrations(databaseURL, *down); err != nil {
			log.Fatal().Err(err).Int("steps", *down).Msg("Rollback failed")
		}
		return
	}

	if err := postgres.RunMigrations(databaseURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
