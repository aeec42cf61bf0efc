package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sosmed/internal/handlers"
	"sosmed/internal/middleware"
	"sosmed/internal/models"
	"sosmed/internal/repositories"
	"sosmed/internal/services"
	"sosmed/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "sosmed.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	// The signing secret has no default on purpose: running with a
	// well-known secret would make every token forgeable.
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database ---
	var dialector gorm.Dialector
	switch driver := viper.GetString("DATABASE_DRIVER"); driver {
	case "postgres":
		dialector = postgres.Open(viper.GetString("DATABASE_DSN"))
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("DATABASE_DSN"))
	default:
		log.Fatalf("Unsupported DATABASE_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Services skip event publishing when the client is nil, so the API
	// runs fine without a broker.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	followRepo := repositories.NewGORMFollowRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	postService := services.NewPostService(postRepo, mqClient)
	followService := services.NewFollowService(followRepo, userRepo, mqClient)
	feedService := services.NewFeedService(followRepo, postRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	followHandler := handlers.NewFollowHandler(followService)
	feedHandler := handlers.NewFeedHandler(feedService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Backend is running. Welcome to API base route.",
		})
	})
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "API running successfully",
		})
	})

	api := app.Group("/api")
	guard := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(api)
	postHandler.RegisterRoutes(api, guard)
	followHandler.RegisterRoutes(api, guard)
	feedHandler.RegisterRoutes(api, guard)

	// --- Activity Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for activity events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received activity event %s (Tag: %d): %s", msg.RoutingKey, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeActivityEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Server gracefully stopped")
}
