package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/config"
	"github.com/noah-isme/career-prep-api/internal/database"
	"github.com/noah-isme/career-prep-api/internal/handler"
	"github.com/noah-isme/career-prep-api/internal/middleware"
	"github.com/noah-isme/career-prep-api/internal/models"
	"github.com/noah-isme/career-prep-api/internal/repository"
	"github.com/noah-isme/career-prep-api/internal/router"
	"github.com/noah-isme/career-prep-api/internal/service"
	"github.com/noah-isme/career-prep-api/pkg/ai"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	logger = logger.With().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.Job{},
		&models.Interview{},
		&models.JobMatchAnalysis{},
		&models.CompanyResearch{},
		&models.InterviewInsight{},
		&models.MockInterviewSession{},
		&models.QuestionResponse{},
		&models.InterviewPrediction{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, prediction cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var events service.EventPublisher
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, prediction events disabled")
		} else {
			defer drainNATS(conn, logger)
			events = conn
		}
	}

	// A missing key leaves the prediction endpoint answering 502 while the
	// readiness preview keeps working.
	var narrator ai.Narrator
	openAINarrator, err := ai.NewOpenAINarrator(ai.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("narrator disabled")
	} else {
		narrator = openAINarrator
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	interviewRepo := repository.NewInterviewRepository(db)
	prepRepo := repository.NewPreparationRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	predictionService := service.NewInterviewPredictionService(interviewRepo, prepRepo, predictionRepo, narrator, redisClient, events, validate, logger, service.PredictionConfig{
		NarrativeTimeout: cfg.AITimeout,
		CacheTTL:         cfg.PredictionCacheTTL,
		EventSubject:     cfg.PredictionCreatedSubject(),
		Provider:         cfg.AIProvider,
	})
	readinessService := service.NewReadinessService(interviewRepo, prepRepo, logger)
	experimentService := service.NewExperimentService(validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AITimeout + 15*time.Second,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.AllowedOrigins,
		AccessLog:    true,
	})
	router.Register(app, cfg, router.Dependencies{
		PredictionHandler:   handler.NewPredictionHandler(predictionService, logger),
		ReadinessHandler:    handler.NewReadinessHandler(readinessService, logger),
		ExperimentHandler:   handler.NewExperimentHandler(experimentService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		PredictionRateLimit: middleware.RateLimit("predictions", cfg.PredictionRateLimit, cfg.PredictionRateWindow),
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Msg("http server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func drainNATS(conn *nats.Conn, logger zerolog.Logger) {
	if err := conn.Drain(); err != nil {
		logger.Warn().Err(err).Msg("nats drain failed")
	}
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
