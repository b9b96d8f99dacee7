package main

import (
	"context"
	"flag"
	"fmt"

	"agrotrust/internal/database"
	"agrotrust/internal/logger"
	"agrotrust/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// This is a simple utility script to seed the database with demo farmers
// and activities. In a production system identity sync and the mobile
// client would create these records.

func main() {
	var farmers = flag.Int("farmers", 3, "Number of demo farmers to create")
	flag.Parse()

	// Load environment variables; a missing .env file is fine
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	locks := services.NewFarmerLocks()
	farmerService := services.NewFarmerService(database.DB, locks)
	activityService := services.NewActivityService(database.DB)
	trustService := services.NewTrustService(database.DB, locks)

	demoProfiles := []struct {
		name     string
		location string
		crop     string
		size     string
		dates    []string
	}{
		{"Amina Wanjiku", "Nakuru", "Maize", "2 acres", []string{"2024-01-10", "2024-01-17", "2024-01-24", "2024-02-02"}},
		{"Joseph Otieno", "Kisumu", "Tea", "1 acre", []string{"2024-01-05"}},
		{"Grace Mwangi", "Nairobi", "Beans", "3 acres", nil},
	}

	for i := 0; i < *farmers && i < len(demoProfiles); i++ {
		p := demoProfiles[i]
		subjectID := fmt.Sprintf("seed-subject-%d", i+1)
		phone := fmt.Sprintf("+2547000000%02d", i+1)

		sync, err := farmerService.SyncUser(ctx, subjectID, phone)
		if err != nil {
			logger.Fatal("Failed to sync demo farmer", zap.Error(err))
		}

		if _, err := farmerService.UpdateProfile(ctx, subjectID, p.name, p.location, p.crop, p.size); err != nil {
			logger.Fatal("Failed to complete demo profile", zap.Error(err))
		}

		for _, date := range p.dates {
			if _, err := activityService.Record(ctx, sync.FarmerID, "planting", date, "seeded demo activity", ""); err != nil {
				logger.Fatal("Failed to record demo activity", zap.Error(err))
			}
		}

		level, score, err := trustService.Recompute(ctx, sync.FarmerID)
		if err != nil {
			logger.Fatal("Failed to recompute demo trust", zap.Error(err))
		}

		logger.Info("Seeded demo farmer",
			zap.String("name", p.name),
			zap.String("farmer_id", sync.FarmerID.String()),
			zap.String("trust_level", string(level)),
			zap.Int("internal_score", score))
	}

	logger.Info("Database seeding completed")
}
