package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suraksha/internal/config"
	"suraksha/internal/handlers"
	"suraksha/internal/repositories/mongodb"
	"suraksha/internal/services"
	"suraksha/internal/utils"
	"suraksha/pkg/cache"
	"suraksha/pkg/database"
	"suraksha/pkg/logger"
	"suraksha/pkg/mailer"
	"suraksha/pkg/sms"
	"suraksha/pkg/websocket"
	"suraksha/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger.WithField("version", cfg.App.Version).Info("Starting Suraksha server")

	db, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, db.Database); err != nil {
		cancelIndexes()
		appLogger.WithError(err).Fatal("Failed to create database indexes")
	}
	cancelIndexes()

	// Redis is optional; the user repository degrades to direct reads
	// when no cache is wired.
	var cacheService mongodb.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = redisCache
		}
	}

	mailService := mailer.New(&mailer.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	var smsProvider sms.Provider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.Twilio.FromNumber,
		)
	}

	wsHandler := websocket.NewHandler(&websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		PingInterval:    cfg.WebSocket.PingInterval,
		PongTimeout:     cfg.WebSocket.PongTimeout,
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
	})

	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	reportRepo := mongodb.NewReportRepository(db.Database)
	sosRepo := mongodb.NewSOSRepository(db.Database)
	queryRepo := mongodb.NewQueryRepository(db.Database)

	authService := services.NewAuthService(userRepo, mailService, &services.AuthConfig{
		JWTSecret: cfg.Security.JWTSecret,
		TokenTTL:  cfg.Security.JWTTokenTTL,
		OTPLength: cfg.Security.OTPLength,
		OTPExpiry: cfg.Security.OTPExpiry,
	}, appLogger)
	reportService := services.NewReportService(reportRepo, userRepo, wsHandler.GetHub(), appLogger)
	sosService := services.NewSOSService(sosRepo, userRepo, wsHandler.GetHub(), smsProvider, cfg.SMS.OnCallNumber, appLogger)
	queryService := services.NewQueryService(queryRepo, mailService, appLogger)
	chatService := services.NewChatService(utils.ChatTypingDelay)

	router := routes.SetupRouter(cfg, appLogger, &routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Report: handlers.NewReportHandler(reportService),
		SOS:    handlers.NewSOSHandler(sosService),
		Query:  handlers.NewQueryHandler(queryService),
		Chat:   handlers.NewChatHandler(chatService),
		WS:     wsHandler,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}

	appLogger.Info("Server stopped")
}
