package main

import (
	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
	"github.com/rs/zerolog/log"
)

// Seeds a fresh database with demo content for local development.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	seedPosts()
	seedGallery()
	seedProjects()
	seedContacts()

	log.Info().Msg("demo content seeded")
}

func seedPosts() {
	posts := service.NewPostService(db.DB)

	inputs := []service.PostInput{
		{
			Slug: "weather-dashboard",
			Translations: db.TranslationMap{
				"en": {
					Title: "Building a Weather Dashboard",
					Metadata: db.PostMetadata{
						Date:     "2025-03-14",
						Author:   "Handra",
						Category: "projects",
						Tags:     []string{"react", "api"},
					},
					Sections: []db.Section{
						{Type: db.SectionTypeIntroduction, Content: "<p>A small dashboard that charts live weather data for the cities I care about.</p>"},
						{Type: db.SectionTypeImage, Images: []db.SectionImage{{Src: "/static/uploads/weather-cover.png", AltText: "dashboard screenshot"}}},
						{Type: db.SectionTypeText, Title: "Why build it", Content: "<p>Existing apps bury the hourly forecast behind three taps.</p>"},
					},
				},
				"id": {
					Title: "Membangun Dasbor Cuaca",
					Metadata: db.PostMetadata{
						Date:     "2025-03-14",
						Author:   "Handra",
						Category: "projects",
						Tags:     []string{"react", "api"},
					},
					Sections: []db.Section{
						{Type: db.SectionTypeIntroduction, Content: "<p>Dasbor kecil yang menampilkan data cuaca langsung.</p>"},
					},
				},
			},
		},
		{
			Slug: "tokyo-trip",
			Translations: db.TranslationMap{
				"en": {
					Title: "A Week in Tokyo",
					Metadata: db.PostMetadata{
						Date:     "2025-05-02",
						Author:   "Handra",
						Category: "travel",
						Tags:     []string{"travel", "photography"},
					},
					Sections: []db.Section{
						{Type: db.SectionTypeIntroduction, Content: "<p>Seven days of trains, ramen and far too many photos.</p>"},
						{Type: db.SectionTypeDisclaimer, Content: "<p>Prices and opening hours are from May 2025.</p>"},
						{Type: db.SectionTypeDivider, Title: "day one"},
						{Type: db.SectionTypeText, Title: "Arrival", Content: "<p>Landed at Haneda just after sunrise.</p>"},
					},
				},
			},
		},
	}

	for _, input := range inputs {
		if err := posts.Delete(input.Slug); err != nil {
			log.Fatal().Err(err).Str("slug", input.Slug).Msg("failed to clear existing post")
		}
		if _, err := posts.Create(input); err != nil {
			log.Fatal().Err(err).Str("slug", input.Slug).Msg("failed to seed post")
		}
	}
}

func seedGallery() {
	gallery := service.NewGalleryService(db.DB)

	photos := []service.GalleryInput{
		{Title: "Fuji at dawn", ImageURL: "/static/uploads/fuji.jpg", Camera: "X100V", ShotAt: "2025-05-03"},
		{Title: "Shibuya crossing", ImageURL: "/static/uploads/shibuya.jpg", Camera: "X100V", ShotAt: "2025-05-05"},
	}
	for _, photo := range photos {
		if _, err := gallery.Create(photo); err != nil {
			log.Fatal().Err(err).Str("title", photo.Title).Msg("failed to seed photo")
		}
	}
}

func seedProjects() {
	projects := service.NewProjectService(db.DB)

	if err := projects.Delete("weather-dashboard"); err != nil {
		log.Fatal().Err(err).Msg("failed to clear existing project")
	}
	if _, err := projects.Create(service.ProjectInput{
		Slug:      "weather-dashboard",
		Name:      "Weather Dashboard",
		Summary:   "Live weather charts for your cities",
		TechStack: []string{"React", "Go"},
		RepoURL:   "https://github.com/handra/weather-dashboard",
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed project")
	}
}

func seedContacts() {
	profiles := service.NewProfileService(db.DB)

	contacts := []service.ProfileContactInput{
		{Platform: "github", Label: "GitHub", Value: "handra", Link: "https://github.com/handra", Icon: "github"},
		{Platform: "email", Label: "Email", Value: "hello@example.com", Link: "mailto:hello@example.com", Icon: "mail"},
	}
	for _, contact := range contacts {
		if _, err := profiles.CreateContact(contact); err != nil {
			log.Fatal().Err(err).Str("platform", contact.Platform).Msg("failed to seed contact")
		}
	}
}
