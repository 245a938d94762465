package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/edutube/internal/app/auth"
	appControllers "github.com/yigit/edutube/internal/app/controllers"
	appMigrations "github.com/yigit/edutube/internal/app/migrations"
	appRepos "github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/app/repositories/memory"
	appRoutes "github.com/yigit/edutube/internal/app/routes"
	appServices "github.com/yigit/edutube/internal/app/services"
	"github.com/yigit/edutube/internal/config"
	"github.com/yigit/edutube/internal/db"
	appMiddleware "github.com/yigit/edutube/internal/middleware"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/cache"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/filestorage"
	"github.com/yigit/edutube/internal/pkg/helpers"
	"github.com/yigit/edutube/internal/pkg/logger"
	"github.com/yigit/edutube/internal/seed"
)

// UploadsPath is the URL prefix stored files are served under
const UploadsPath = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services    *appServices.Services
	Controllers *appRoutes.Controllers

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Sessions       *appAuth.SessionGuard
	FileStorage    *filestorage.LocalStorage
	Publisher      *events.Publisher
	Logger         zerolog.Logger
}

// Infrastructure is the set of external connections the process owns
type Infrastructure struct {
	Database  *db.PostgresDB // nil with the memory driver
	Repos     *appRepos.Repositories
	Redis     *redis.Client // nil when no cache is configured
	Publisher *events.Publisher
}

// Close releases every connection. It is safe on a partially built value.
func (i *Infrastructure) Close(lgr zerolog.Logger) {
	if i == nil {
		return
	}
	if err := i.Publisher.Close(); err != nil {
		lgr.Error().Err(err).Msg("Error closing event publisher")
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			lgr.Error().Err(err).Msg("Error closing redis client")
		}
	}
	i.Database.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store. For postgres this connects and
// applies the embedded migrations; the memory driver needs neither.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, *appRepos.Repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		return nil, memory.NewRepositories(), nil
	}

	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return database, appRepos.NewRepositories(database.Pool), nil
}

// SetupCache connects to redis when a URL is configured. Failure to connect
// is not fatal: sessions then read straight from the database.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if cfg.Redis.URL == "" {
		lgr.Info().Msg("Redis not configured, session cache disabled")
		return nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, session cache disabled")
		return nil
	}
	lgr.Info().Msg("Redis connection established")
	return client
}

// SetupEvents creates the domain event publisher
func SetupEvents(cfg *config.Config, lgr zerolog.Logger) (*events.Publisher, error) {
	return events.NewPublisher(events.Config{
		KafkaBrokers: cfg.KafkaBrokerList(),
		Topic:        cfg.Events.Topic,
	}, lgr)
}

// SetupInfrastructure opens the database, cache and event transport and seeds
// the default administrator.
func SetupInfrastructure(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{}

	var err error
	infra.Database, infra.Repos, err = SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	infra.Redis = SetupCache(ctx, cfg, lgr)

	infra.Publisher, err = SetupEvents(cfg, lgr)
	if err != nil {
		infra.Close(lgr)
		return nil, fmt.Errorf("failed to setup events: %w", err)
	}

	if err := seed.CreateDefaultAdmin(ctx, infra.Repos.UserRepository, seed.AdminAccount{
		Email:    cfg.Auth.AdminEmail,
		Password: cfg.Auth.AdminPassword,
		Name:     cfg.Auth.AdminName,
	}, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return infra, nil
}

// BuildDependencies initializes services and controllers on top of infra.
func BuildDependencies(cfg *config.Config, infra *Infrastructure, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Repos:     infra.Repos,
		Publisher: infra.Publisher,
		Logger:    lgr,
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, UploadsPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Sessions = appAuth.NewSessionGuard(
		deps.Repos.UserRepository,
		cache.NewCacheHelper(infra.Redis, appAuth.SessionCachePrefix),
		helpers.ParseDuration(cfg.Redis.SessionTTL, 5*time.Minute),
		lgr,
	)

	deps.Services = appServices.NewServices(appServices.Deps{
		Repos:         deps.Repos,
		JWT:           deps.JWTService,
		Sessions:      deps.Sessions,
		Storage:       deps.FileStorage,
		Publisher:     deps.Publisher,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Auth:          appServices.AuthOptions{AllowAdminSignup: cfg.Auth.AllowAdminSignup},
		Logger:        lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Sessions)

	var ping func(ctx context.Context) error
	if infra.Database != nil {
		ping = infra.Database.Ping
	}

	deps.Controllers = &appRoutes.Controllers{
		System: appControllers.NewSystemController(cfg.Database.Driver, ping),
		Auth:   appControllers.NewAuthController(deps.Services.AuthService),
		Video:  appControllers.NewVideoController(deps.Services.VideoService, cfg.Server.MaxUploadSize),
		Note:   appControllers.NewNoteController(deps.Services.NoteService, cfg.Server.MaxUploadSize),
		Quiz:   appControllers.NewQuizController(deps.Services.QuizService),
		Admin:  appControllers.NewAdminController(deps.Services.AdminService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupSwagger(router)
	router.Static(UploadsPath, deps.FileStorage.BasePath())
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", appMiddleware.RequestIDKey}
	c.ExposeHeaders = []string{"Content-Disposition", appMiddleware.RequestIDKey}

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}
