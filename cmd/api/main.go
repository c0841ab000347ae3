package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sharebite/donation-system/internal/api"
	"github.com/sharebite/donation-system/internal/core/service"
	"github.com/sharebite/donation-system/internal/infrastructure/config"
	mongodb "github.com/sharebite/donation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sharebite/donation-system/internal/infrastructure/db/redis"
	"github.com/sharebite/donation-system/internal/infrastructure/email"
	"github.com/sharebite/donation-system/internal/infrastructure/geo"
	"github.com/sharebite/donation-system/internal/infrastructure/queue"
	"github.com/sharebite/donation-system/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Collaborators ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	donationRepo := mongodb.NewDonationRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	if err := donationRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure donation indexes")
	}
	if err := claimRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure claim indexes")
	}

	mailer := email.NewMailgunMailer(email.Config{
		Domain: cfg.Mailgun.Domain,
		APIKey: cfg.Mailgun.APIKey,
		Sender: cfg.Mailgun.Sender,
	})
	geocoder := geo.NewNominatimGeocoder(geo.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
	})
	guard := redisdb.NewClaimGuard(rdb)

	// --- Services + background workers ---
	retention := time.Duration(cfg.RetentionHours) * time.Hour
	alertSvc := service.NewAlertService(userRepo, donationRepo, mailer, retention, log)

	dispatcher := queue.NewDispatcher(cfg.TaskWorkers, alertSvc, log)
	dispatcher.Start(ctx)

	donationSvc := service.NewDonationService(donationRepo, geocoder, dispatcher, log)
	claimSvc := service.NewClaimService(donationRepo, claimRepo, guard, dispatcher, log)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, donationSvc, claimSvc, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("donation api listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Anything still queued in the dispatcher is lost here, which the
	// fire-and-forget contract allows.
}
