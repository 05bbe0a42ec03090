package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unimag/portal/internal/api"
	"github.com/unimag/portal/internal/core/domain"
	mongodb "github.com/unimag/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/unimag/portal/internal/infrastructure/db/redis"
	"github.com/unimag/portal/internal/infrastructure/queue"
	"github.com/unimag/portal/internal/infrastructure/storage"
	"github.com/unimag/portal/internal/pkg/config"
	"github.com/unimag/portal/pkg/logger"
)

// defaultFaculties is the reference data inserted on first boot. The faculties
// collection is read-only afterwards; changes go through operations, not the API.
var defaultFaculties = []domain.Faculty{
	{ID: "business", Name: "Faculty of Business", Description: "Business, management and economics programmes"},
	{ID: "engineering", Name: "Faculty of Engineering", Description: "Engineering and computer science programmes"},
	{ID: "arts", Name: "Faculty of Arts and Humanities", Description: "Arts, languages and humanities programmes"},
	{ID: "sciences", Name: "Faculty of Sciences", Description: "Natural and applied sciences programmes"},
	{ID: "education", Name: "Faculty of Education", Description: "Teacher training and education programmes"},
}

// @title        University Magazine Portal API
// @version      1.0
// @description  Role-based submission portal: students submit articles and
// @description  images, coordinators review and select, managers oversee,
// @description  admins configure academic settings.
// @BasePath     /
func main() {
	// Best effort: absence of a .env file is normal outside development.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("database bootstrap failed")
	}

	files, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	activityRepo := mongodb.NewActivityRepository(db)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityRepo, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, files, dispatcher, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// bootstrap creates the indexes the queries depend on and seeds reference data.
func bootstrap(ctx context.Context, db *mongo.Database) error {
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(bootCtx); err != nil {
		return err
	}
	if err := mongodb.NewSubmissionRepository(db).EnsureIndexes(bootCtx); err != nil {
		return err
	}
	if err := mongodb.NewCommentRepository(db).EnsureIndexes(bootCtx); err != nil {
		return err
	}
	if err := mongodb.NewActivityRepository(db).EnsureIndexes(bootCtx); err != nil {
		return err
	}
	return mongodb.NewFacultyRepository(db).Seed(bootCtx, defaultFaculties)
}
