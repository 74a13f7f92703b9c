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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tlca-systems/register-backend/api/controllers"
	"github.com/tlca-systems/register-backend/api/routes"
	"github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/internal/catalog"
	checkoutsvc "github.com/tlca-systems/register-backend/internal/checkout"
	"github.com/tlca-systems/register-backend/internal/cron"
	"github.com/tlca-systems/register-backend/internal/history"
	"github.com/tlca-systems/register-backend/internal/staff"
	"github.com/tlca-systems/register-backend/pkg/config"
	"github.com/tlca-systems/register-backend/pkg/db"
	"github.com/tlca-systems/register-backend/pkg/logger"
	"github.com/tlca-systems/register-backend/pkg/metrics"
	"github.com/tlca-systems/register-backend/pkg/pricing"
	"github.com/tlca-systems/register-backend/pkg/pubsub"
	"github.com/tlca-systems/register-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// The remote store is optional. A register without a DSN runs the whole
	// session offline against the cache, same as one that loses the
	// connection mid-shift.
	var dbClient *db.Client
	if cfg.DB.Configured() {
		dbClient, err = db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap remote store", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing remote store", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "remote store not configured, starting offline")
	}

	redisClient, err := redis.New(context.Background(), cfg.Cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cache", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing cache", err)
		}
	}()

	var brokerClient *pubsub.Client
	if cfg.PubSub.Configured() {
		brokerClient, err = pubsub.NewClient(context.Background(), cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap change feed", err)
			os.Exit(1)
		}
		defer func() {
			if err := brokerClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing change feed", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "change feed not configured, register only sees its own writes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"register_id": cfg.App.RegisterID,
	})

	historyCache, err := history.NewCache(redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create history cache", err)
		os.Exit(1)
	}

	var remote history.RemoteStore
	if dbClient != nil {
		remote, err = history.NewRemote(dbClient)
		if err != nil {
			logg.Error(ctx, "failed to create remote order store", err)
			os.Exit(1)
		}
	}

	var feed history.Publisher
	if brokerClient != nil {
		publisher, err := history.NewFeedPublisher(brokerClient, cfg.App.RegisterID)
		if err != nil {
			logg.Error(ctx, "failed to create feed publisher", err)
			os.Exit(1)
		}
		feed = publisher
	}

	store, err := history.NewStore(remote, historyCache, feed, cfg.App.RegisterID, logg)
	if err != nil {
		logg.Error(ctx, "failed to create history store", err)
		os.Exit(1)
	}
	if err := store.Load(ctx); err != nil {
		logg.Error(ctx, "failed to hydrate order history", err)
		os.Exit(1)
	}

	catalogCache, err := catalog.NewCache(redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create catalog cache", err)
		os.Exit(1)
	}
	var catalogRepo catalog.Repository
	if dbClient != nil {
		catalogRepo = catalog.NewRepository(dbClient.DB())
	}
	products, err := catalog.NewService(catalog.ServiceParams{
		Repository: catalogRepo,
		Cache:      catalogCache,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := products.Load(ctx); err != nil {
		logg.Error(ctx, "failed to hydrate catalog", err)
		os.Exit(1)
	}

	staffCache, err := staff.NewCache(redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create staff cache", err)
		os.Exit(1)
	}
	var staffRepo staff.Repository
	if dbClient != nil {
		staffRepo = staff.NewRepository(dbClient.DB())
	}
	roster, err := staff.NewService(staff.ServiceParams{
		Repository: staffRepo,
		Cache:      staffCache,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create staff service", err)
		os.Exit(1)
	}
	if err := roster.Load(ctx); err != nil {
		logg.Error(ctx, "failed to hydrate staff roster", err)
		os.Exit(1)
	}

	sessions := cart.NewSessions(pricing.Default())

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Sessions: sessions,
		History:  store,
		Staff:    roster,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	if brokerClient != nil {
		consumer, err := history.NewConsumer(brokerClient, store, logg)
		if err != nil {
			logg.Error(ctx, "failed to create change feed consumer", err)
			os.Exit(1)
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error(ctx, "change feed consumer stopped unexpectedly", err)
			}
		}()
	}

	backupJob, err := cron.NewBackupJob(cron.BackupJobParams{
		Logger: logg,
		Store:  store,
		Cache:  historyCache,
		MaxAge: cfg.Backup.MaxAge,
	})
	if err != nil {
		logg.Error(ctx, "failed to create backup job", err)
		os.Exit(1)
	}
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("history-backup"), 0)
	if err != nil {
		logg.Error(ctx, "failed to create cron lock", err)
		os.Exit(1)
	}
	cronService, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(backupJob),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Backup.CheckInterval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cron service", err)
		os.Exit(1)
	}
	go func() {
		if err := cronService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "cron service stopped unexpectedly", err)
		}
	}()

	var dbPinger, brokerPinger controllers.Pinger
	if dbClient != nil {
		dbPinger = dbClient
	}
	if brokerClient != nil {
		brokerPinger = brokerClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbPinger, redisClient, brokerPinger, store, sessions, products, roster, checkoutService),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "error shutting down api server", err)
		}
	}()

	logg.Info(logg.WithField(ctx, "addr", addr), "starting register api")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "register api shut down gracefully")
}
