package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kritika/internal/handlers"
	"kritika/internal/middleware"
	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/internal/services"
	"kritika/pkg/mailer"
	"kritika/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("SQLITE_PATH", "kritika.db")
	viper.SetDefault("JWT_SECRET", "change_me_jwt_secret")
	viper.SetDefault("SECRET_KEY", "change_me_code_secret")
	viper.SetDefault("DEFAULT_FROM_EMAIL", "noreply@kritika.local")
	viper.SetDefault("EMAIL_FAIL_SILENTLY", true)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Database (GORM) ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Email Transport ---
	var smtpMailer mailer.Mailer
	if host := viper.GetString("SMTP_HOST"); host != "" {
		smtpMailer = mailer.NewSMTPMailer(
			host,
			viper.GetString("SMTP_PORT"),
			viper.GetString("SMTP_USERNAME"),
			viper.GetString("SMTP_PASSWORD"),
		)
	} else {
		smtpMailer = &mailer.LogMailer{}
	}

	outgoing := smtpMailer
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		outgoing = mailer.NewQueueMailer(mqClient)

		// Drain the email queue into the SMTP transport.
		consumerErr := mqClient.ConsumeEmailMessages(func(msg amqp.Delivery) error {
			var email rabbitmq.EmailMessage
			if err := json.Unmarshal(msg.Body, &email); err != nil {
				return err
			}
			return smtpMailer.Send(email.Subject, email.Body, email.From, email.To)
		})
		if consumerErr != nil {
			log.Printf("Failed to start email consumer: %v", consumerErr)
		}
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(
		userRepo,
		outgoing,
		viper.GetString("JWT_SECRET"),
		viper.GetString("SECRET_KEY"),
		viper.GetString("DEFAULT_FROM_EMAIL"),
		viper.GetBool("EMAIL_FAIL_SILENTLY"),
	)
	catalogService := services.NewCatalogService(categoryRepo, genreRepo, titleRepo)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, titleRepo)
	userService := services.NewUserService(userRepo)

	if err := bootstrapAdmin(userRepo); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.Authenticate(authService, userRepo))

	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_DSN is configured and
// falls back to an embedded SQLite file otherwise. TranslateError makes
// unique-constraint violations surface as gorm.ErrDuplicatedKey on both
// drivers; SQLite additionally needs foreign keys switched on for the
// cascade constraints to fire.
func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	dsn := "file:" + viper.GetString("SQLITE_PATH") + "?_foreign_keys=on"
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// bootstrapAdmin creates the initial admin account from ADMIN_USERNAME,
// ADMIN_EMAIL and ADMIN_PASSWORD when configured and the account does not
// exist yet. This is the only account with a stored password; API clients
// authenticate with confirmation codes.
func bootstrapAdmin(userRepo repositories.UserRepository) error {
	username := viper.GetString("ADMIN_USERNAME")
	email := viper.GetString("ADMIN_EMAIL")
	if username == "" || email == "" {
		return nil
	}
	if _, err := userRepo.GetByUsername(username); err == nil {
		return nil
	}

	admin := &models.User{Username: username, Email: email, Role: models.RoleAdmin}
	if password := viper.GetString("ADMIN_PASSWORD"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin.Password = string(hashed)
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("Bootstrapped admin user %s", username)
	return nil
}
