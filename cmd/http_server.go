package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/hmaulana/maintenance-management/internal"
	"github.com/hmaulana/maintenance-management/internal/alert"
	alertPostgres "github.com/hmaulana/maintenance-management/internal/alert/postgres"
	"github.com/hmaulana/maintenance-management/internal/asset"
	assetPostgres "github.com/hmaulana/maintenance-management/internal/asset/postgres"
	"github.com/hmaulana/maintenance-management/internal/auth"
	authPostgres "github.com/hmaulana/maintenance-management/internal/auth/postgres"
	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/guard"
	"github.com/hmaulana/maintenance-management/internal/notifier"
	"github.com/hmaulana/maintenance-management/internal/session"
	"github.com/hmaulana/maintenance-management/internal/session/localstore"
	"github.com/hmaulana/maintenance-management/internal/session/redisstore"
	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/internal/transport/rest"
	"github.com/hmaulana/maintenance-management/internal/user"
	userPostgres "github.com/hmaulana/maintenance-management/internal/user/postgres"
	"github.com/hmaulana/maintenance-management/internal/workorder"
	workorderPostgres "github.com/hmaulana/maintenance-management/internal/workorder/postgres"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Redis    *redis.Client
	Router   *chi.Mux
	Notifier *notifier.Dispatcher
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Notifier.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				deps.Logger.Error("redis close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewBus(lg)

	// Session store backend.
	var store session.Store
	var redisClient *redis.Client
	switch config.Session.Backend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.Session.RedisAddr,
			DB:   config.Session.RedisDB,
		})
		store = redisstore.NewWithPrefix(redisClient, config.Session.RedisPrefix)
	default:
		localStore, err := localstore.Open(config.Session.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local session store: %w", err)
		}
		store = localStore
	}

	// Authentication and session management.
	tokenGen := auth.NewJWTTokenGenerator(config.Security.TokenSecret, config.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, lg)
	sessions := session.NewManager(store, authService, bus, lg)
	routeGuard := guard.New(sessions, bus, lg)

	// Domain services.
	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	assetService := asset.NewService(assetRepo, lg)

	workOrderService := workorder.NewService(workorderPostgres.NewWorkOrderRepository(gormDB), bus, lg)

	alertService := alert.NewService(
		alertPostgres.NewAlertRepository(gormDB),
		&assetTagResolver{repo: assetRepo},
		bus,
		lg,
	)

	userService := user.NewService(userPostgres.NewRepository(gormDB))

	// Event-driven automation and notifications.
	alert.NewEventHandler(workOrderService, lg).RegisterEventHandlers(bus)

	dispatcher := notifier.NewDispatcher(notifier.Config{
		WebhookURL:     config.Notifier.WebhookURL,
		Timeout:        config.Notifier.RequestTimeout,
		MaxWorkers:     config.Notifier.MaxWorkers,
		JobQueueSize:   config.Notifier.JobQueueSize,
		WorkerPoolSize: config.Notifier.WorkerPoolSize,
	}, lg)
	notifier.NewEventHandler(dispatcher, lg).RegisterEventHandlers(bus)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:               db.DB,
		Redis:            redisClient,
		Guard:            routeGuard,
		AuthHandler:      auth.NewHandler(sessions),
		UserHandler:      user.NewHandler(userService, sessions),
		AssetHandler:     asset.NewHandler(assetService),
		WorkOrderHandler: workorder.NewHandler(workOrderService),
		AlertHandler:     alert.NewHandler(alertService),
		WebhookHandler:   alert.NewWebhookHandler(transport.NewBaseHandler(lg), alertService, lg),
		WebhookToken:     config.Security.WebhookToken,
		Logger:           lg,
	})

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Redis:    redisClient,
		Router:   router,
		Notifier: dispatcher,
	}, nil
}

// assetTagResolver adapts the asset repository to the alert service's tag
// lookup.
type assetTagResolver struct {
	repo asset.RepositoryAPI
}

func (r *assetTagResolver) ResolveTag(tag string) (int64, error) {
	record, err := r.repo.GetByTag(tag)
	if err != nil {
		return 0, err
	}
	if record == nil || !record.IsActive {
		return 0, fmt.Errorf("no active asset with tag %s", tag)
	}
	return record.ID, nil
}

// initDB opens the shared pgx connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
