package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"offerwall-service/internal/consumers"
	"offerwall-service/internal/database"
	"offerwall-service/internal/services"
	"offerwall-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	// Init Services
	hiqmobiService := services.NewHiqmobiService(db)
	payoutService := services.NewPayoutService(db)

	// Processor
	processor := consumers.NewConversionProcessor(hiqmobiService, payoutService, client)

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
