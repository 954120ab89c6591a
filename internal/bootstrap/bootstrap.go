package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/launchpad/internal/app/auth"
	appControllers "github.com/yigit/launchpad/internal/app/controllers"
	appMigrations "github.com/yigit/launchpad/internal/app/migrations"
	appRepos "github.com/yigit/launchpad/internal/app/repositories"
	appRoutes "github.com/yigit/launchpad/internal/app/routes"
	appServices "github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/config"
	"github.com/yigit/launchpad/internal/db"
	appMiddleware "github.com/yigit/launchpad/internal/middleware"
	pkgAuth "github.com/yigit/launchpad/internal/pkg/auth"
	"github.com/yigit/launchpad/internal/pkg/helpers"
	"github.com/yigit/launchpad/internal/pkg/logger"
	"github.com/yigit/launchpad/internal/scheduler"
	"github.com/yigit/launchpad/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	UserService       appServices.UserService
	StartupService    appServices.StartupService
	FundingService    appServices.FundingService
	InvestmentService appServices.InvestmentService
	CommunityService  appServices.CommunityService
	AnalyticsService  appServices.AnalyticsService
	Controllers       appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// The returned closer releases the log file when logging.output is "file".
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, nil, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	var output io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	switch strings.ToLower(cfg.Logging.Output) {
	case "stderr":
		output = os.Stderr
	case "file":
		w := logger.NewFileWriter(logger.FileConfig{
			Filename:   cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
		output, closer = w, w
		// Rotated files are not colourised.
		prettyLog = false
	}

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: output,
	})

	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logOutput", cfg.Logging.Output).
		Msg("Logger configured")
	return cfg, lgr, closer, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies pending migrations and creates default data.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	applied, err := migrator.MigrateFromDirectory(ctx, migrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewStartupRepository(database), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.StartupRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		pkgAuth.BcryptHasher{},
		logger.Component("auth"),
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, logger.Component("users"))
	deps.StartupService = appServices.NewStartupService(
		deps.Repos.StartupRepository,
		deps.AuthzService,
		logger.Component("startups"),
	)
	deps.FundingService = appServices.NewFundingService(
		deps.Repos.FundingRoundRepository,
		deps.Repos.StartupRepository,
		deps.AuthzService,
		logger.Component("funding"),
	)
	deps.InvestmentService = appServices.NewInvestmentService(
		deps.Repos.InvestmentRepository,
		deps.AuthzService,
		logger.Component("investments"),
	)
	deps.CommunityService = appServices.NewCommunityService(
		deps.Repos.CommunityRepository,
		deps.Repos.StartupRepository,
		logger.Component("community"),
	)
	deps.AnalyticsService = appServices.NewAnalyticsService(
		deps.Repos.AnalyticsRepository,
		deps.Repos.StartupRepository,
		cfg.Analytics.LeaderboardSize,
		logger.Component("analytics"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(deps.AuthService, lgr),
		User:      appControllers.NewUserController(deps.UserService, lgr),
		Startup:   appControllers.NewStartupController(deps.StartupService, lgr),
		Funding:   appControllers.NewFundingController(deps.FundingService, deps.InvestmentService, lgr),
		Community: appControllers.NewCommunityController(deps.CommunityService, deps.AnalyticsService, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(cfg.CORS.AllowedOrigins) == 0 || (len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	return c
}

// SetupScheduler registers the periodic jobs. It returns nil when the scheduler is disabled.
func SetupScheduler(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*scheduler.Manager, error) {
	if !cfg.Scheduler.Enabled {
		lgr.Info().Msg("Scheduler disabled")
		return nil, nil
	}

	manager, err := scheduler.NewManager(logger.Component("scheduler"))
	if err != nil {
		return nil, err
	}

	interval := helpers.ParseDuration(cfg.Scheduler.AuditInterval, 15*time.Minute)
	job := scheduler.NewLedgerAuditJob(deps.FundingService, interval, logger.Component("ledger_audit"))
	if err := manager.Register(job); err != nil {
		return nil, err
	}
	return manager, nil
}
