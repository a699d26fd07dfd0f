package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/config"
	"github.com/frotaweb/fleet-app/database"
	"github.com/frotaweb/fleet-app/middlewares"
	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/router"
	"github.com/frotaweb/fleet-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InitDB(db)

	config.LoadSiteConfiguration()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Drop expired revoked tokens in the background
	go utils.CleanupBlacklist(time.Hour)

	// General limiter: 50 requests per second per IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Conductor{},
		&models.Vehicle{},
		&models.DriverRequest{},
		&models.VehicleRequest{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// The conditional unique indexes are the real guard for "one
	// pending request per natural key"
	if err := database.EnsureConstraints(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to ensure constraints: %v", err)
	}
}
