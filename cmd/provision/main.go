// Command provision seeds the bootstrap admin account. Run once at
// deployment time; re-running against a provisioned store is a no-op.
package main

import (
	"context"
	"time"

	"github.com/taskdesk/task-system/internal/core/service"
	"github.com/taskdesk/task-system/internal/infrastructure/config"
	mongostore "github.com/taskdesk/task-system/internal/infrastructure/db/mongo"
	"github.com/taskdesk/task-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	userRepo := mongostore.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	admin, err := service.NewProvisionService(userRepo, log).
		EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("provisioning failed")
	}

	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("provisioning complete")
}
