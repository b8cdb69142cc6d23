package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/notehive/notehive-server/internal/app/catalog"
	appControllers "github.com/notehive/notehive-server/internal/app/controllers"
	appMigrations "github.com/notehive/notehive-server/internal/app/migrations"
	appRepos "github.com/notehive/notehive-server/internal/app/repositories"
	appRoutes "github.com/notehive/notehive-server/internal/app/routes"
	appServices "github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/app/viewcount"
	"github.com/notehive/notehive-server/internal/config"
	"github.com/notehive/notehive-server/internal/db"
	appMiddleware "github.com/notehive/notehive-server/internal/middleware"
	pkgAuth "github.com/notehive/notehive-server/internal/pkg/auth"
	"github.com/notehive/notehive-server/internal/pkg/helpers"
	"github.com/notehive/notehive-server/internal/pkg/logger"
	"github.com/notehive/notehive-server/internal/pkg/websocket"
	"github.com/notehive/notehive-server/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	NoteService      appServices.NoteService      // Interface type
	AdminNoteService appServices.AdminNoteService // Interface type
	DirectoryService *appServices.DirectoryService
	AuthService      *appServices.AuthService

	NoteController      *appControllers.NoteController
	DirectoryController *appControllers.DirectoryController
	AdminNoteController *appControllers.AdminNoteController
	AuthController      *appControllers.AuthController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService

	// Catalogue read model and the machinery hanging off it
	Catalog            *catalog.Catalog
	Counter            *viewcount.Counter
	RedisClient        *goredis.Client
	Hub                *websocket.Hub
	EventsHandler      *websocket.Handler
	Publisher          *websocket.Publisher
	EventsSubscription chan catalog.Event

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("NOTEHIVE_CONFIG", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, the catalogue, services and
// controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The catalogue must hold a snapshot before any request is served
	deps.Catalog = catalog.New(deps.Repos)
	refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.Catalog.Refresh(refreshCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to load initial catalogue snapshot")
		return nil, fmt.Errorf("initial catalogue load failed: %w", err)
	}
	lgr.Info().Uint64("version", deps.Catalog.Snapshot().Version).Msg("Catalogue loaded")

	// Optional Redis-backed view buffering
	if cfg.RedisEnabled() {
		deps.RedisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelPing()
		if err := deps.RedisClient.Ping(pingCtx).Err(); err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}

	// View counter flushes buffered deltas to the notes table, then refreshes
	// the catalogue so listings pick the new counts up
	flushInterval := helpers.ParseDuration(cfg.Views.FlushInterval, 30*time.Second)
	onFlush := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := deps.Catalog.Refresh(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Catalogue refresh after view flush failed")
		}
	}
	if deps.RedisClient != nil {
		deps.Counter = viewcount.NewRedisCounter(deps.RedisClient, deps.Repos.NoteRepository, flushInterval, onFlush)
	} else {
		deps.Counter = viewcount.NewMemoryCounter(deps.Repos.NoteRepository, flushInterval, onFlush)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Initialize services
	deps.NoteService = appServices.NewNoteService(deps.Catalog, deps.Repos.NoteRepository, deps.Counter)
	deps.AdminNoteService = appServices.NewAdminNoteService(deps.Repos.NoteRepository, deps.Catalog)
	deps.DirectoryService = appServices.NewDirectoryService(deps.Catalog)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.AdminRepository)

	// Initialize controllers
	deps.NoteController = appControllers.NewNoteController(deps.NoteService, lgr)
	deps.DirectoryController = appControllers.NewDirectoryController(deps.DirectoryService)
	deps.AdminNoteController = appControllers.NewAdminNoteController(deps.AdminNoteService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)

	// WebSocket fan-out of catalogue change events
	deps.Hub = websocket.NewHub(logger.With("hub"))
	deps.EventsSubscription = deps.Catalog.Subscribe()
	deps.Publisher = websocket.NewPublisher(deps.Hub, deps.EventsSubscription, logger.With("publisher"))
	deps.EventsHandler = websocket.NewHandler(deps.Hub, deps.Catalog, logger.With("events"))

	return deps, nil
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.NoteController,
		deps.DirectoryController,
		deps.AdminNoteController,
		deps.AuthController,
		deps.EventsHandler,
		deps.AuthMiddleware,
	)

	return router
}
