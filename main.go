package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel/config"
	"hotel/jobs"
	"hotel/repositories"
	"hotel/routes"
	"hotel/services"
	"hotel/services/logger"
	"hotel/services/notification"
)

func openStore(cfg *config.Config, appLogger logger.Logger) (repositories.Store, error) {
	if cfg.DBDriver == config.DriverMemory {
		appLogger.Warn("DB_DRIVER=memory, data is lost on restart")
		return repositories.NewMemoryStore(), nil
	}

	db, err := config.ConnectDB(cfg.DB, appLogger)
	if err != nil {
		return nil, err
	}
	store := repositories.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	out, closeLog, err := logger.Output(cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	appLogger := logger.NewLogger(logger.ParseLevel(cfg.LogLevel), out)

	ctx := context.Background()

	store, err := openStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	rdb, err := config.ConnectRedis(ctx, cfg.Redis, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}
	cache := services.NewRoomCache(rdb, cfg.CacheTTL, appLogger)

	router, m, c := config.InitApp(cfg, appLogger)

	tokens := services.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL)
	authService := services.NewAuthService(services.AuthServiceOptions{
		Store:  store,
		Logger: appLogger,
		Tokens: tokens,
	})
	roomService := services.NewRoomService(services.RoomServiceOptions{
		Store:  store,
		Cache:  cache,
		Logger: appLogger,
	})
	ledger := services.NewBookingService(services.BookingServiceOptions{
		Store:    store,
		Cache:    cache,
		Notifier: notification.NewMelodyService(m),
		Logger:   appLogger,
	})

	if cfg.SeedData {
		seeder := services.NewSeedService(services.SeedServiceOptions{
			Store:  store,
			Auth:   authService,
			Ledger: ledger,
			Logger: appLogger,
		})
		if err := seeder.Seed(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	if err := jobs.InitCronJobs(c, ledger, cfg.AuditSchedule, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Services{
		Auth:    authService,
		Users:   services.NewUserService(services.UserServiceOptions{Store: store, Logger: appLogger, Auth: authService}),
		Rooms:   roomService,
		Ledger:  ledger,
		Chatbot: services.NewChatbotService(services.ChatbotServiceOptions{Rooms: roomService, Logger: appLogger}),
	}, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	m.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown: %v", err)
		return
	}
	appLogger.Info("Server stopped gracefully")
}
