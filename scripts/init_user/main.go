package main

import (
	"flag"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/rs/zerolog/log"
)

// Creates or updates the admin account.
func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("a -password is required")
	}

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := db.SetUserPassword(*username, *password); err != nil {
		log.Fatal().Err(err).Msg("failed to create user")
	}

	log.Info().Str("username", *username).Msg("admin user ready")
}
