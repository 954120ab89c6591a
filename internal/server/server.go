package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/launchpad/internal/bootstrap"
	"github.com/yigit/launchpad/internal/config"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/scheduler"
)

// Server holds the state for the HTTP server.
type Server struct {
	config    *config.Config
	router    *gin.Engine
	database  *db.PostgresDB
	scheduler *scheduler.Manager
	logger    zerolog.Logger
	logCloser io.Closer
	http      *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, logCloser, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := bootstrap.RunMigrations(context.Background(), cfg, database, lgr); err != nil {
		database.Close()
		logCloser.Close()
		return nil, err
	}

	deps := bootstrap.BuildDependencies(cfg, database, lgr)

	manager, err := bootstrap.SetupScheduler(cfg, deps, lgr)
	if err != nil {
		database.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to setup scheduler: %w", err)
	}

	return &Server{
		config:    cfg,
		router:    bootstrap.SetupRouter(cfg, deps, lgr),
		database:  database,
		scheduler: manager,
		logger:    lgr,
		logCloser: logCloser,
	}, nil
}

// Migrate applies pending migrations and exits without serving.
func Migrate(ctx context.Context, configPath string) error {
	cfg, lgr, logCloser, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config or setup logger: %w", err)
	}
	defer logCloser.Close()

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer database.Close()

	return bootstrap.RunMigrations(ctx, cfg, database, lgr)
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if s.scheduler != nil {
		s.scheduler.Start()
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.Shutdown(context.Background()) //nolint:errcheck
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(); err != nil {
			s.logger.Error().Err(err).Msg("Scheduler shutdown error")
			errs = append(errs, err)
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if s.logCloser != nil {
		if err := s.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
