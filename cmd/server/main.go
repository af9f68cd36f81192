package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/cache"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/config"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/handlers"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/handlers/ws"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("development", "info")
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(cfg.Server.Environment, cfg.Logger.Level)

	db, err := repository.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, running without cache")
		_ = redisCache.Close()
		redisCache = nil
	} else {
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache connected")
	}
	cancelPing()
	conversationCache := cache.NewConversationCache(redisCache)

	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)

	hub := ws.NewHub()

	conversationService := service.NewConversationService(convRepo, participantRepo, userRepo, conversationCache)
	messageService := service.NewMessageService(participantRepo, messageRepo, conversationCache, hub)
	readStateService := service.NewReadStateService(participantRepo, convRepo, conversationCache, hub)
	directoryService := service.NewDirectoryService(directoryRepo, participantRepo, convRepo, userRepo, readStateService, conversationCache)

	app := fiber.New(fiber.Config{
		AppName:   "Cohort Messaging",
		BodyLimit: 1 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.Server.AllowedOrigins != "" && cfg.Server.AllowedOrigins != "*",
	}))

	handlers.Routes{
		JWTSecret:      cfg.JWT.Secret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SendLimit:      60,
		Conversations:  handlers.NewConversationHandler(conversationService, directoryService, readStateService),
		Messages:       handlers.NewMessageHandler(messageService),
		Groups:         handlers.NewGroupHandler(directoryService),
		WebSocket:      handlers.NewWebSocketHandler(hub, messageService, readStateService),
	}.Register(app)

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	hub.Close()
	if redisCache != nil {
		_ = redisCache.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
