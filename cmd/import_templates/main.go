package main

import (
	"context"
	"flag"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/blueprints"
	"onboarding_poll_system/internal/db"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
	"onboarding_poll_system/internal/di"
)

func main() {
	file := flag.String("file", "", "path to the YAML blueprint")
	projectID := flag.Int64("project", 0, "project the templates belong to, none when zero")
	flag.Parse()

	config, err := configs.LoadToolConfig()
	logger := di.NewLogger(config.Logger, config.App, "import_templates")
	defer logger.Sync()

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	if *file == "" {
		logger.Fatal("blueprint file is required, pass -file")
	}

	blueprint, err := blueprints.Load(*file)
	if err != nil {
		logger.Fatalw("failed to load blueprint", "error", err)
	}

	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()

	subject := models.NoSubject()
	if *projectID != 0 {
		subject = models.ProjectSubject(*projectID)
	}

	templates, err := blueprints.Import(context.Background(), repositories.NewStore(database), blueprint, subject)
	if err != nil {
		logger.Fatalw("failed to import templates", "error", err)
	}

	for _, template := range templates {
		logger.Infow("template imported", "id", template.ID, "title", template.Title, "poll_type", template.PollType)
	}
	logger.Infow("blueprint imported", "file", *file, "templates", len(templates))
}
