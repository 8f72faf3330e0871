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

	"github.com/aegisedu/campus-portal/internal"
	"github.com/aegisedu/campus-portal/internal/auth"
	authStorage "github.com/aegisedu/campus-portal/internal/auth/storage"
	"github.com/aegisedu/campus-portal/internal/dashboard"
	"github.com/aegisedu/campus-portal/internal/filestore"
	"github.com/aegisedu/campus-portal/internal/grievance"
	grievanceStorage "github.com/aegisedu/campus-portal/internal/grievance/storage"
	"github.com/aegisedu/campus-portal/internal/internship"
	internshipStorage "github.com/aegisedu/campus-portal/internal/internship/storage"
	"github.com/aegisedu/campus-portal/internal/resource"
	resourceStorage "github.com/aegisedu/campus-portal/internal/resource/storage"
	"github.com/aegisedu/campus-portal/internal/transport/rest"
	"github.com/aegisedu/campus-portal/internal/transport/swagger"
	"github.com/aegisedu/campus-portal/internal/user"
	userStorage "github.com/aegisedu/campus-portal/internal/user/storage"
	"github.com/aegisedu/campus-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle portal requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config            *internal.Config
	DB                *gorm.DB
	SqlxDB            *sqlx.DB
	Router            *chi.Mux
	Store             *filestore.LocalStore
	Logger            *slog.Logger
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	GrievanceHandler  *grievance.Handler
	ResourceHandler   *resource.Handler
	InternshipHandler *internship.Handler
	DashboardHandler  *dashboard.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if sqlDB, dbErr := deps.DB.DB(); dbErr == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("Database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		deps.SqlxDB.DB,
		rest.RouterConfig{
			AllowedOrigins: deps.Config.Server.Origins(),
			UploadDir:      deps.Config.Storage.UploadDir,
		},
		deps.AuthHandler,
		deps.UserHandler,
		deps.GrievanceHandler,
		deps.ResourceHandler,
		deps.InternshipHandler,
		deps.DashboardHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}
	sqlxDB := sqlx.NewDb(sqlDB, sqlxDriverName(config.Database.Driver))

	store, err := filestore.NewLocalStore(
		config.Storage.UploadDir,
		config.Storage.MaxUploadSize,
		config.Storage.AllowedExtensions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	// A broken OpenAPI document should not stop the portal, only the docs.
	if err := swagger.ValidateSpecFile(context.Background(), "./api/openapi.yml"); err != nil {
		lg.Warn("OpenAPI spec failed validation; swagger UI may misbehave", "error", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(config.Security.SessionSecret, config.Security.SessionTTL)
	authService := auth.NewService(authStorage.NewRepository(db), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService, config.Security.SessionTTL)

	userService := user.NewService(userStorage.NewRepository(db))
	userHandler := user.NewHandler(userService)

	grievanceService := grievance.NewService(grievanceStorage.NewGrievanceRepository(db), lg)
	grievanceHandler := grievance.NewHandler(grievanceService)

	resourceService := resource.NewService(resourceStorage.NewResourceRepository(db), store, lg)
	resourceHandler := resource.NewHandler(resourceService, config.Storage.MaxUploadSize)

	internshipService := internship.NewService(internshipStorage.NewInternshipRepository(db), lg)
	internshipHandler := internship.NewHandler(internshipService)

	dashboardService := dashboard.NewService(sqlxDB, lg)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	return &Dependencies{
		Config:            config,
		DB:                db,
		SqlxDB:            sqlxDB,
		Router:            chi.NewRouter(),
		Store:             store,
		Logger:            lg,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		GrievanceHandler:  grievanceHandler,
		ResourceHandler:   resourceHandler,
		InternshipHandler: internshipHandler,
		DashboardHandler:  dashboardHandler,
	}, nil
}

// initDB opens the configured database engine through GORM with error
// translation on, so unique violations become typed errors everywhere.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = gormPostgres.Open(cfg.Source)
	default:
		dialector = gormSqlite.Open(cfg.Source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// sqlxDriverName maps the config driver onto the registered sql driver used
// for placeholder rebinding.
func sqlxDriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return "sqlite3"
}
