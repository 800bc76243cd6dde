package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"blogapi/internal/database"
	"blogapi/internal/handlers"
	"blogapi/internal/repositories"
	"blogapi/internal/services"
	"blogapi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "site.db")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("PAGE_SIZE", 2)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	dbDSN := viper.GetString("DB_DSN")
	uploadDir := viper.GetString("UPLOAD_DIR")
	pageSize := viper.GetInt("PAGE_SIZE")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Open the store ---
	db, err := database.Connect(context.Background(), dbDriver, dbDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event queue (optional) ---
	// Post events are a best-effort side channel; with no broker URL the
	// API runs without them.
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		// Drain the post events queue alongside the server. Downstream
		// processing is a log line for now; real consumers run out of
		// process against the same queue.
		go func() {
			log.Println("Starting RabbitMQ consumer for post events...")
			err := mqClient.ConsumePostEvents(func(event rabbitmq.PostEvent) error {
				log.Printf("Received post event %s for post %d by user %s", event.Action, event.PostID, event.UserID)
				return nil
			})
			if err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set, post events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)

	// --- Services ---
	accountService := services.NewAccountService(userRepo, uploadDir)
	postService := services.NewPostService(postRepo, userRepo, events, pageSize)

	// --- Handlers ---
	accountHandler := handlers.NewAccountHandler(accountService)
	postHandler := handlers.NewPostHandler(postService)

	// --- Fiber app ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	// Wildcard CORS: the API is consumed by browser frontends on other
	// origins and carries no credentials.
	app.Use(cors.New())

	// --- API Routes ---
	accountHandler.RegisterRoutes(app)
	postHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Metrics Endpoint ---
	app.Get("/metrics", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		metrics.WritePrometheus(&buf, true)
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		return c.Send(buf.Bytes())
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

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
