package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"painel/src/api"
	apicontrollers "painel/src/api/controllers"
	apihandlers "painel/src/api/handlers"
	"painel/src/clients/bcb"
	"painel/src/clients/sidra"
	"painel/src/config"
	"painel/src/database"
	"painel/src/indicators"
	"painel/src/repositories"
	"painel/src/scheduler"
	"painel/src/services"
	"painel/src/utils"
	"painel/src/utils/metrics"
	redis_utils "painel/src/utils/redis"
	"painel/src/worker"
	workercontrollers "painel/src/worker/controllers"
	workerhandlers "painel/src/worker/handlers"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("Error while running")
		os.Exit(1)
	}
}

func newSeriesCache(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (services.SeriesCache, func(), error) {
	ttl, err := time.ParseDuration(cfg.Service.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Databases.Redis.Enabled {
		return services.NewMemorySeriesCache(ttl), func() {}, nil
	}
	handler, err := redis_utils.NewRedisHandler(ctx, cfg.Databases.Redis)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("host", cfg.Databases.Redis.Host).Info("Caching series in redis")
	return services.NewRedisSeriesCache(handler, ttl), func() { _ = handler.Close() }, nil
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ctx = utils.WithLogger(ctx, logger)

	db, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, closeCache, err := newSeriesCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	recorder := metrics.New()
	service, err := newIndicatorService(cfg, db, cache, recorder)
	if err != nil {
		return err
	}

	if cfg.Scheduler.PopulateOnStart {
		if err := service.PopulateIfEmpty(ctx); err != nil {
			logger.WithError(err).Warn("Some indicators could not be populated")
		}
	}

	sched := scheduler.NewScheduler(logger, service)
	if cfg.Scheduler.Enabled || cfg.Service.Type == config.WORKER {
		if err := sched.Start(service.Catalog().All()); err != nil {
			return err
		}
		defer sched.Stop()
	}

	var httpServer *http.Server
	if cfg.Service.Type == config.WORKER {
		handler := workerhandlers.NewHandler(workercontrollers.NewController(service, sched))
		httpServer = worker.NewHTTPServer(worker.NewServer(handler, recorder, logger), cfg.Service.Port)
	} else {
		handler := apihandlers.NewHandler(apicontrollers.NewController(service, recorder))
		server := api.NewServer(handler, service.Catalog().Panels(), recorder, logger, cfg.Service.AllowedOrigins)
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
	}

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Service.Port, "type": cfg.Service.Type}).Info("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newIndicatorService(cfg *config.Config, db *pgxpool.Pool, cache services.SeriesCache, recorder *metrics.Recorder) (*services.IndicatorService, error) {
	bcbClient, err := bcb.NewClient(cfg.ExternalClients.BCB)
	if err != nil {
		return nil, err
	}
	sidraClient, err := sidra.NewClient(cfg.ExternalClients.SIDRA)
	if err != nil {
		return nil, err
	}
	return services.NewIndicatorService(
		indicators.NewCatalog(cfg.Indicators.Codes),
		repositories.NewObservationRepository(db),
		repositories.NewRefreshLogRepository(db),
		bcbClient,
		sidraClient,
		cache,
		recorder,
	), nil
}
