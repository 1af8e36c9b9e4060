// @title Cinematik API
// @version 1.0
// @description Auth, reviews, movie lists and profile endpoints for the Cinematik client.
// @host localhost:8000
// @BasePath /
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"context"
	"os"
	"time"

	"github.com/cinematik/backend/config"
	"github.com/cinematik/backend/infra/queue"
	"github.com/cinematik/backend/internal/api/rest/handlers"
	"github.com/cinematik/backend/internal/api/rest/middleware"
	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/helper"
	applog "github.com/cinematik/backend/internal/log"
	"github.com/cinematik/backend/internal/metrics"
	"github.com/cinematik/backend/internal/repository"
	"github.com/cinematik/backend/internal/services"
	"github.com/cinematik/backend/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const tokenCleanupInterval = time.Hour

func StartServer(cfg config.Config) {
	logger, err := applog.Init(os.Getenv("ENV") == "prod")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	app := fiber.New()
	RegisterSwagger(app)
	app.Use(middleware.MetricsMiddleware())

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		zap.S().Fatalw("database connection error", "error", err)
	}
	zap.S().Info("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260314

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		zap.S().Fatalw("migration lock error", "error", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.PasswordResetToken{},
		&domain.Review{},
		&domain.Movie{},
	); err != nil {
		zap.S().Fatalw("migration error", "error", err)
	}
	zap.S().Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		zap.S().Fatalw("cloudinary init error", "error", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTokenTTLMin)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	movieRepo := repository.NewMovieRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, resetRepo, reviewRepo, authHelper, kafkaProducer)
	reviewSvc := services.NewReviewService(reviewRepo)
	movieSvc := services.NewMovieService(movieRepo)
	profileSvc := services.NewProfileService(userRepo, reviewRepo, up)
	mailSvc := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.ClientURL,
	)

	// ---------- Background workers ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		mailSvc,
	)
	go consumer.Listen(context.Background())
	go cleanupLoop(authSvc)

	// ---------- Handlers ----------
	requireAuth := middleware.AuthMiddleware(authHelper, userRepo)
	optionalAuth := middleware.OptionalAuthMiddleware(authHelper, userRepo)

	handlers.NewAuthHandler(authSvc).SetupRoutes(app)
	handlers.NewReviewHandler(reviewSvc).SetupRoutes(app, optionalAuth, requireAuth)
	handlers.NewMovieHandler(movieSvc).SetupRoutes(app, requireAuth)
	handlers.NewProfileHandler(profileSvc).SetupRoutes(app, requireAuth)

	// ---------- Health + metrics ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- Listen ----------
	addr := cfg.ServerPort
	zap.S().Infow("listening", "addr", addr)
	zap.S().Fatal(app.Listen(addr))
}

func cleanupLoop(svc services.AuthService) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		svc.CleanupExpiredTokens()
	}
}
