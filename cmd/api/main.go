package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leadtrackhq/leadtrack-api/internal/config"
	"github.com/leadtrackhq/leadtrack-api/internal/email"
	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	campaignHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/campaign"
	dashboardHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/dashboard"
	followupHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/followup"
	leadHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/lead"
	meetingHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/meeting"
	notificationHandler "github.com/leadtrackhq/leadtrack-api/internal/handler/notification"
	"github.com/leadtrackhq/leadtrack-api/internal/middleware"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository/memory"
	"github.com/leadtrackhq/leadtrack-api/internal/router"
	campaignService "github.com/leadtrackhq/leadtrack-api/internal/service/campaign"
	dashboardService "github.com/leadtrackhq/leadtrack-api/internal/service/dashboard"
	leadService "github.com/leadtrackhq/leadtrack-api/internal/service/lead"
	meetingService "github.com/leadtrackhq/leadtrack-api/internal/service/meeting"
	notificationService "github.com/leadtrackhq/leadtrack-api/internal/service/notification"
	"github.com/leadtrackhq/leadtrack-api/internal/worker"
	"github.com/leadtrackhq/leadtrack-api/pkg/event"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
	"github.com/leadtrackhq/leadtrack-api/pkg/messaging"
	redisbroker "github.com/leadtrackhq/leadtrack-api/pkg/messaging/redis"
	"github.com/leadtrackhq/leadtrack-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     true,
	})

	// Initialize the in-memory store
	store := memory.NewStore()
	if cfg.SeedDemo {
		store.Seed()
		appLogger.Info("demo dataset seeded")
	}

	// Initialize repositories
	leadRepo := memory.NewLeadRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	campaignRepo := memory.NewCampaignRepository(store)

	// Metrics and change-event plumbing
	appMetrics := metrics.NewMetrics("leadtrack")

	var broker messaging.Broker
	if cfg.Redis.Enabled {
		zl := log.Logger
		broker, err = redisbroker.NewBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}

	dispatcher := worker.NewDispatcher(broker, appLogger, appMetrics, 256)
	store.Observe(dispatcher.Enqueue)
	store.Observe(func(ch event.Change) {
		appMetrics.StoreMutations.WithLabelValues(ch.Entity, string(ch.Operation)).Inc()
		appMetrics.StoreVersion.Set(float64(ch.Version))
	})
	store.Observe(func(ch event.Change) {
		if ch.Entity != "lead" {
			return
		}
		leads, err := leadRepo.List(context.Background(), &model.LeadFilters{})
		if err == nil {
			appMetrics.LeadsTotal.Set(float64(len(leads)))
		}
	})

	// Email sender: SMTP when configured, logging dry-run otherwise
	var sender email.Service
	if cfg.SMTP.Enabled {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, appLogger)
	} else {
		sender = email.NewLogSender(appLogger)
	}

	// Initialize services
	leadSvc := leadService.NewService(leadRepo, appLogger)
	dashboardSvc := dashboardService.NewService(leadRepo)
	notificationSvc := notificationService.NewService(notificationRepo, leadRepo, appMetrics)
	meetingSvc := meetingService.NewService(leadRepo, appLogger)
	campaignSvc := campaignService.NewService(campaignRepo, leadRepo, sender, appLogger, appMetrics)

	// Setup router
	r := router.NewRouter(
		handler.NewHandler(),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "leadtrack",
		},
		leadHandler.NewHandler(leadSvc),
		followupHandler.NewHandler(leadSvc),
		dashboardHandler.NewHandler(dashboardSvc),
		notificationHandler.NewHandler(notificationSvc),
		meetingHandler.NewHandler(meetingSvc),
		campaignHandler.NewHandler(campaignSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start background workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	go dispatcher.Start(workerCtx)
	go worker.NewCampaignDispatcher(campaignSvc, cfg.Campaign.DispatchInterval, appLogger).Start(workerCtx)

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	if broker != nil {
		if err := broker.Close(); err != nil {
			appLogger.Error(err, "failed to close broker")
		}
	}

	appLogger.Info("server exited")
}
