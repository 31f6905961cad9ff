package main

import (
	"log"
	"os"

	"offerwall-service/internal/database"
	"offerwall-service/internal/handlers"
	"offerwall-service/internal/middleware"
	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	campaignService := services.NewCampaignService(db)
	leadService := services.NewLeadService(db, campaignService)
	referralService := services.NewReferralService(db, campaignService)
	hiqmobiService := services.NewHiqmobiService(db)
	payoutService := services.NewPayoutService(db)
	adminService := services.NewAdminService(db, hiqmobiService)
	authService := services.NewAuthService(db)
	syncScheduler := services.NewSyncScheduler(asynqClient)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	userHandler := handlers.NewUserHandler(leadService)
	referralHandler := handlers.NewReferralHandler(referralService)
	adminHandler := handlers.NewAdminHandler(adminService, authService, payoutService, hiqmobiService, syncScheduler)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Offerwall service",
		})
	})

	api := r.Group("/api")

	// Public routes
	api.GET("/campaigns", campaignHandler.List)
	api.GET("/campaigns/:identifier", middleware.ReferralTracker(referralService), campaignHandler.Get)
	api.POST("/users", userHandler.Submit)
	api.POST("/referrals/generate", referralHandler.Generate)
	api.GET("/referrals/track/:code", referralHandler.TrackClick)
	api.POST("/referrals/conversion", referralHandler.RecordConversion)
	api.GET("/referrals/user/:referrerId", referralHandler.GetUserReferrals)
	api.POST("/admin/login", adminHandler.Login)

	// Admin routes
	admin := api.Group("/")
	admin.Use(middleware.AdminAuth(authService))
	admin.POST("/campaigns", campaignHandler.Create)
	admin.PUT("/campaigns/:identifier", campaignHandler.Update)
	admin.DELETE("/campaigns/:identifier", campaignHandler.Delete)
	admin.PATCH("/users/:id/status", userHandler.UpdateStatus)
	admin.PATCH("/users/:id/campaign", userHandler.UpdateCampaign)
	admin.GET("/admin/conversions", adminHandler.GetConversions)
	admin.GET("/admin/db-conversions", adminHandler.GetDBConversions)
	admin.POST("/admin/sync", adminHandler.TriggerSync)
	admin.GET("/admin/payouts", adminHandler.ListPayouts)
	admin.PATCH("/admin/payouts/:id/status", adminHandler.UpdatePayoutStatus)
	admin.GET("/admin/users/:phone/process", adminHandler.GetUserProcessDetails)

	// Start Cron Schedulers
	syncScheduler.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
