package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"resto_staff_backend/internal/database"
	"resto_staff_backend/internal/notifications"
	"resto_staff_backend/internal/router"
	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "resto_staff_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "resto_staff_password")
	dbName := utils.Getenv("DB_NAME", "resto_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	// Initialize Database
	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Canonical status names may differ per installation.
	statuses := services.StatusConfig{
		New:        utils.Getenv("STATUS_NEW", services.DefaultStatusConfig().New),
		Processing: utils.Getenv("STATUS_PROCESSING", services.DefaultStatusConfig().Processing),
	}

	// Notifications are best-effort: a missing broker must not keep the
	// backend from serving staff traffic.
	var notifier services.Notifier = services.NopNotifier{}
	amqpURL := os.Getenv("AMQP_URL")
	if amqpURL != "" {
		amqpNotifier, err := notifications.NewAMQPNotifier(amqpURL)
		if err != nil {
			utils.LogError(err, "Failed to connect to AMQP broker, notifications disabled")
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
		}
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, database.GetDB(), notifier, statuses)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
