package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/quizapi/internal/app/controllers"
	appMigrations "github.com/yigit/quizapi/internal/app/migrations"
	appRepos "github.com/yigit/quizapi/internal/app/repositories"
	appRoutes "github.com/yigit/quizapi/internal/app/routes"
	appServices "github.com/yigit/quizapi/internal/app/services"
	"github.com/yigit/quizapi/internal/config"
	"github.com/yigit/quizapi/internal/db"
	appMiddleware "github.com/yigit/quizapi/internal/middleware"
	pkgAuth "github.com/yigit/quizapi/internal/pkg/auth"
	"github.com/yigit/quizapi/internal/pkg/helpers"
	"github.com/yigit/quizapi/internal/pkg/logger"
	"github.com/yigit/quizapi/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	QuestionService appServices.QuestionService
	QuizService     appServices.QuizService
	UserService     appServices.UserService
	AuthService     appServices.AuthService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Metrics        *appMiddleware.Metrics
	RateLimiter    *appMiddleware.RateLimiter

	Repos      *appRepos.Repositories
	JWTService *pkgAuth.JWTService
	Logger     zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// SeedDatabase creates the default catalogue and admin user when seeding is enabled.
// Failures are logged and do not stop the startup.
func SeedDatabase(cfg *config.Config, database *db.PostgresDB, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, database, repos, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ConfigDuration("jwt.access_token_expiration", cfg.JWT.AccessTokenExpiration, 24*time.Hour, lgr),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.QuestionService = appServices.NewQuestionService(deps.Repos.QuestionRepository, deps.Repos.TopicRepository)
	deps.QuizService = appServices.NewQuizService(deps.Repos.QuestionRepository, deps.Repos.QuizRepository, cfg.Quiz.QuestionsPerQuiz, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		pkgAuth.NewPasswordHasher(pkgAuth.DefaultBcryptCost),
		deps.JWTService,
		cfg.Auth.ProtectAdminRoutes,
		lgr,
	)

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Metrics = appMiddleware.NewMetrics()
	deps.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.Requests, helpers.ConfigDuration("rate_limit.window", cfg.RateLimit.Window, time.Minute, lgr))

	deps.Controllers = appRoutes.Controllers{
		Health:   appControllers.NewHealthController(database, lgr),
		Question: appControllers.NewQuestionController(deps.QuestionService, cfg.Quiz.MaxQuestions),
		Quiz:     appControllers.NewQuizController(deps.QuizService),
		User:     appControllers.NewUserController(deps.UserService),
		Auth:     appControllers.NewAuthController(deps.AuthService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(lgr),
		deps.Metrics.Middleware(),
		deps.RateLimiter.Middleware(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, appRoutes.Options{
		ProtectAdminRoutes: cfg.Auth.ProtectAdminRoutes,
		AuthMiddleware:     deps.AuthMiddleware,
		MetricsHandler:     deps.Metrics.Handler(),
	})

	if cfg.Auth.ProtectAdminRoutes {
		lgr.Info().Msg("Admin routes require an ADMIN bearer token")
	}

	return router
}

// WithCORS restricts cross-origin access to the configured origin, with credentials
func WithCORS(cfg *config.Config, next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
