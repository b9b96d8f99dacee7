package services

import (
	"context"
	"testing"

	"agrotrust/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// A fresh connection to :memory: is a fresh database, so keep every
	// query on one connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestFarmer inserts a profile plus farmer profile and returns the
// external farmer id
func createTestFarmer(t *testing.T, db *gorm.DB, subjectID, name, location, crop string) uuid.UUID {
	t.Helper()

	profile := models.Profile{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Phone:     "+254" + subjectID,
		Role:      models.RoleFarmer,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	farmer := models.FarmerProfile{
		ProfileID:  profile.ID,
		FullName:   name,
		Location:   location,
		MainCrop:   crop,
		TrustLevel: models.TrustLevelNew,
	}
	if err := db.Create(&farmer).Error; err != nil {
		t.Fatalf("Failed to create test farmer profile: %v", err)
	}

	return profile.ID
}

// recordTestActivities appends one activity per date, in order
func recordTestActivities(t *testing.T, db *gorm.DB, farmerID uuid.UUID, dates ...string) {
	t.Helper()

	service := NewActivityService(db)
	for _, date := range dates {
		if _, err := service.Record(context.Background(), farmerID, "planting", date, "", ""); err != nil {
			t.Fatalf("Failed to record test activity: %v", err)
		}
	}
}
