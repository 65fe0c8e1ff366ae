package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/config"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/scheduler"
	"github.com/Mangum87/Charis/internal/server/handlers"
	"github.com/Mangum87/Charis/internal/server/router"
	"github.com/Mangum87/Charis/internal/service/distribution"
	"github.com/Mangum87/Charis/internal/service/kits"
	"github.com/Mangum87/Charis/internal/store"
	"github.com/Mangum87/Charis/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	st, err := store.NewMongoStore(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init document store", zap.Error(err))
	}
	defer func() {
		if !store.Await(st.Close()) {
			baseLogger.Error("failed to close document store")
		}
	}()

	userRepo := repository.NewUserRepository(st, baseLogger.Named("repo.users"))
	categoryRepo := repository.NewCategoryRepository(st, baseLogger.Named("repo.categories"))
	locationRepo := repository.NewLocationRepository(st, baseLogger.Named("repo.locations"))
	itemRepo := repository.NewItemRepository(st, categoryRepo, locationRepo, baseLogger.Named("repo.items"))

	kitSvc := kits.NewService(st, itemRepo, baseLogger.Named("svc.kits"))
	distSvc := distribution.NewService(st, itemRepo, userRepo, baseLogger.Named("svc.distributions"))

	engine := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(userRepo, cfg.Auth.JWTSecret, baseLogger.Named("handlers.auth")),
		Items:         handlers.NewItemsHandler(itemRepo, categoryRepo, locationRepo, baseLogger.Named("handlers.items")),
		Catalog:       handlers.NewCatalogHandler(categoryRepo, locationRepo, baseLogger.Named("handlers.catalog")),
		Kits:          handlers.NewKitsHandler(kitSvc, itemRepo, baseLogger.Named("handlers.kits")),
		Distributions: handlers.NewDistributionsHandler(distSvc, itemRepo, userRepo, baseLogger.Named("handlers.distributions")),
		Users:         handlers.NewUsersHandler(userRepo, baseLogger.Named("handlers.users")),
	}, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, distSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
