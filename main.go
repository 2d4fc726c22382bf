package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kntista_backend/internals/configs"
	database "kntista_backend/internals/databases"
	"kntista_backend/internals/features/activity/cleanup"
	"kntista_backend/internals/helpers/feed"
	middlewares "kntista_backend/internals/middlewares"
	routes "kntista_backend/internals/route"
	routeDetails "kntista_backend/internals/route/details"
)

func main() {
	configs.LoadEnv()
	cfg := configs.App

	app := routes.NewApp(cfg.TrustedProxies)
	limiterStorage := middlewares.SetupMiddlewares(app, cfg)

	// DB connect + pool + warm-up
	database.ConnectDB(cfg.DatabaseDSN)
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}
	database.WarmUpQueries()

	publisher := feed.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	services := routeDetails.NewActivityServices(database.DB, publisher)

	// scheduler after the DB is ready
	scheduler, err := cleanup.Start(cfg.ReferenceCleanupCron, services.CleanupTargets()...)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	routes.SetupRoutes(app, database.DB, services)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[INFO] Listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%d", cfg.Port)); err != nil {
			log.Fatalf("[ERROR] server: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := publisher.Close(); err != nil {
		log.Printf("[WARN] close event feed: %v", err)
	}
	if limiterStorage != nil {
		_ = limiterStorage.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
