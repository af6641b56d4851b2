package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
	"github.com/rs/zerolog/log"
)

type importFile struct {
	Posts []struct {
		Slug         string            `json:"slug"`
		Translations db.TranslationMap `json:"translations"`
	} `json:"posts"`
}

// One-off loader for post archives exported as JSON. Existing posts with the
// same slug are replaced.
func main() {
	path := flag.String("file", "posts.json", "path to the posts JSON file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to read import file")
	}

	var archive importFile
	if err := json.Unmarshal(raw, &archive); err != nil {
		log.Fatal().Err(err).Msg("failed to parse import file")
	}

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	posts := service.NewPostService(db.DB)
	imported := 0
	for _, entry := range archive.Posts {
		if err := posts.Delete(entry.Slug); err != nil {
			log.Fatal().Err(err).Str("slug", entry.Slug).Msg("failed to clear existing post")
		}
		if _, err := posts.Create(service.PostInput{Slug: entry.Slug, Translations: entry.Translations}); err != nil {
			log.Fatal().Err(err).Str("slug", entry.Slug).Msg("failed to import post")
		}
		imported++
	}

	log.Info().Int("count", imported).Msg("posts imported")
}
