package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Karthikk7293/social-media-handler/domain/repository"
	"github.com/Karthikk7293/social-media-handler/infrastructure/cache"
	"github.com/Karthikk7293/social-media-handler/infrastructure/configuration"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
	"github.com/Karthikk7293/social-media-handler/infrastructure/metrics"
	"github.com/Karthikk7293/social-media-handler/infrastructure/persistence"
	httpHandler "github.com/Karthikk7293/social-media-handler/interfaces/http"
	"github.com/Karthikk7293/social-media-handler/server"
	"github.com/Karthikk7293/social-media-handler/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

// initiateSource is swapped in tests
var initiateSource = InitiateSource

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

// run owns every deferred cleanup, so main only exits after they ran
func run() int {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Apply(&configuration.C)
	logger.SetFormat(configuration.C.Logger.Format)

	app := configuration.C.App
	if os.Getenv("ENV") == "prod" || os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	source, closeSource, err := initiateSource(ctx, configuration.C)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Dashboard source initialization failed")
		return 1
	}
	defer closeSource()

	// The dashboard is immutable after load; any failure here aborts start-up
	loadCtx, cancelLoad := context.WithTimeout(ctx, 15*time.Second)
	dashboard, err := usecase.LoadDashboard(loadCtx, source)
	cancelLoad()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("source", configuration.C.Data.Source).Error("Dashboard load failed")
		return 1
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"source":    configuration.C.Data.Source,
		"platforms": len(dashboard.Identities()),
		"periods":   len(dashboard.Periods()),
		"latest":    dashboard.LatestPeriod(),
	}).Info("Dashboard loaded")

	collector := metrics.NewCollector()
	collector.SetDashboardShape(len(dashboard.Identities()), len(dashboard.Periods()))

	dashboardUsecase := usecase.NewDashboardUsecase(dashboard)
	if configuration.C.Cache.Enabled {
		redisClient, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
			configuration.C.RedisClient.Username,
			configuration.C.RedisClient.Password,
			configuration.C.RedisClient.DB,
		)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - serving overview without cache")
		} else {
			defer redisClient.Close()
			ttl := time.Duration(configuration.C.Cache.TTLSeconds) * time.Second
			dashboardUsecase = dashboardUsecase.WithCache(cache.NewDashboardCache(redisClient, "social-media"), ttl)
			logger.GetLogger().WithField("ttl", ttl.String()).Info("Redis client initialized successfully.")
		}
	}

	dashboardHandler := httpHandler.NewDashboardHandler(dashboardUsecase, collector)
	healthHandler := httpHandler.NewHealthHandler()
	router := server.InitiateRouter(dashboardHandler, healthHandler, collector, configuration.C.Cors.AllowOrigins)

	g, gctx := errgroup.WithContext(ctx)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-gctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("HTTP server shutdown did not complete cleanly")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		return 2
	}
	logger.GetLogger().Info("Application stopped")
	return 0
}

// InitiateSource opens the configured snapshot source. The returned close
// function releases any connection the source holds.
func InitiateSource(ctx context.Context, cfg configuration.Config) (repository.IDashboardSource, func(), error) {
	noop := func() {}
	switch cfg.Data.Source {
	case configuration.SourceFile:
		return persistence.NewFileDashboardSource(cfg.Data.Path), noop, nil

	case configuration.SourcePostgres:
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			return nil, noop, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
		}
		if err := persistence.EnsureDashboardSchema(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring dashboard schema")
		}
		return persistence.NewDashboardRepository(db, cfg.Data.Dashboard), func() { _ = db.Close() }, nil

	case configuration.SourceMSSQL:
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			return nil, noop, fmt.Errorf("cannot connect to MSSQL: %w", err)
		}
		if err := persistence.EnsureDashboardSchemaMSSQL(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring dashboard schema (mssql)")
		}
		return persistence.NewDashboardRepository(db, cfg.Data.Dashboard), func() { _ = db.Close() }, nil

	case configuration.SourceMySQL:
		db, err := persistence.NewRepositories()
		if err != nil {
			return nil, noop, fmt.Errorf("cannot connect to MySQL: %w", err)
		}
		if err := persistence.EnsureDashboardSchemaGorm(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring dashboard schema (mysql)")
		}
		closeFn := noop
		if sqlDB, err := db.DB(); err == nil {
			closeFn = func() { _ = sqlDB.Close() }
		}
		return persistence.NewGormDashboardRepository(db, cfg.Data.Dashboard), closeFn, nil

	case configuration.SourceMongo:
		mongoCfg := cfg.Database.Mongo
		client, err := persistence.NewMongoDb(mongoCfg.Host, mongoCfg.Port, mongoCfg.User, mongoCfg.Password, mongoCfg.Name)
		if err != nil {
			return nil, noop, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, noop, fmt.Errorf("mongo ping failed: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return persistence.NewMongoDashboardRepository(client, mongoCfg.Name, cfg.Data.Collection, cfg.Data.Dashboard), closeFn, nil
	}
	return nil, noop, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}
