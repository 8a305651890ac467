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
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/auth"
	authPostgres "github.com/guardhq/workforce-management/internal/auth/postgres"
	"github.com/guardhq/workforce-management/internal/checkpoint"
	checkpointPostgres "github.com/guardhq/workforce-management/internal/checkpoint/postgres"
	"github.com/guardhq/workforce-management/internal/client"
	clientPostgres "github.com/guardhq/workforce-management/internal/client/postgres"
	"github.com/guardhq/workforce-management/internal/employee"
	employeePostgres "github.com/guardhq/workforce-management/internal/employee/postgres"
	"github.com/guardhq/workforce-management/internal/role"
	rolePostgres "github.com/guardhq/workforce-management/internal/role/postgres"
	"github.com/guardhq/workforce-management/internal/transport/rest"
	"github.com/guardhq/workforce-management/internal/user"
	userPostgres "github.com/guardhq/workforce-management/internal/user/postgres"
	"github.com/guardhq/workforce-management/pkg/logger"
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
	Config      *internal.Config
	DB          *gorm.DB
	Router      *chi.Mux
	AuthService *auth.Service
	Handlers    rest.Handlers
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to access database pool: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Handlers, deps.AuthService, deps.Config.QRStore.Dir, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	hasher := auth.NewPasswordHasher(config.Security.BCryptCost)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authPostgres.NewSessionRepository(db), tokenGen, hasher, lg)
	userService := user.NewService(userPostgres.NewUserRepository(db), hasher, lg)
	roleService := role.NewService(rolePostgres.NewRoleRepository(db), lg)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(db), lg)
	clientService := client.NewService(
		clientPostgres.NewClientRepository(db), hasher, config.Security.DefaultClientPass, lg)
	checkpointService := checkpoint.NewService(
		checkpointPostgres.NewCheckpointRepository(db),
		checkpoint.NewFileArtifactStore(config.QRStore.Dir, config.QRStore.BaseURL),
		lg,
	)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Role:       role.NewHandler(roleService),
		Employee:   employee.NewHandler(employeeService),
		Client:     client.NewHandler(clientService),
		Checkpoint: checkpoint.NewHandler(checkpointService),
	}

	return &Dependencies{
		Config:      config,
		DB:          db,
		Router:      chi.NewRouter(),
		AuthService: authService,
		Handlers:    handlers,
		Logger:      lg,
	}, nil
}

// initDB opens the gorm connection over the pgx stdlib driver and
// applies the pool limits from config.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access db pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
