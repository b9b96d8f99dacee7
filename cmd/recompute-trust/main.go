package main

import (
	"context"

	"agrotrust/internal/database"
	"agrotrust/internal/logger"
	"agrotrust/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables; a missing .env file is fine
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	logger.Info("Starting trust recompute...")

	// Load database configuration and connect
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	trustService := services.NewTrustService(database.DB, services.NewFarmerLocks())

	if err := trustService.RecomputeAll(context.Background()); err != nil {
		logger.Fatal("Failed to recompute trust scores", zap.Error(err))
	}

	logger.Info("Trust recompute completed")
}
