package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activityDateLayout is the wire format for farmer-asserted activity dates
const activityDateLayout = "2006-01-02"

// ActivityService is the append-only ledger of farm activity records
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates a new activity service
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends a new activity for the farmer. The date must be a valid
// YYYY-MM-DD calendar date; a failed append leaves the ledger unchanged.
// V1 has no offline queue, so new records are immediately synced.
func (s *ActivityService) Record(ctx context.Context, farmerID uuid.UUID, activityType, activityDate, notes, photoURL string) (*models.FarmActivity, error) {
	farmer, err := s.farmerByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(activityDateLayout, activityDate)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid activity date %q, expected YYYY-MM-DD", activityDate))
	}

	activity := models.FarmActivity{
		FarmerProfileID: farmer.ID,
		ActivityType:    activityType,
		ActivityDate:    date,
		Notes:           notes,
		PhotoURL:        photoURL,
		SyncStatus:      models.SyncStatusSynced,
	}
	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	return &activity, nil
}

// List returns the farmer's activities, most recent activity date first,
// ties broken by most recently recorded. Partner views rely on this
// ordering.
func (s *ActivityService) List(ctx context.Context, farmerID uuid.UUID) ([]models.FarmActivity, error) {
	farmer, err := s.farmerByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	return orderedActivities(s.db.WithContext(ctx), farmer.ID)
}

// HasHistory reports whether the farmer has recorded any activity
func (s *ActivityService) HasHistory(ctx context.Context, farmerID uuid.UUID) (bool, error) {
	farmer, err := s.farmerByID(ctx, farmerID)
	if err != nil {
		return false, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.FarmActivity{}).
		Where("farmer_profile_id = ?", farmer.ID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count activities: %w", err)
	}
	return count > 0, nil
}

func (s *ActivityService) farmerByID(ctx context.Context, farmerID uuid.UUID) (*models.FarmerProfile, error) {
	var farmer models.FarmerProfile
	err := s.db.WithContext(ctx).Where("profile_id = ?", farmerID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Farmer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up farmer profile: %w", err)
	}
	return &farmer, nil
}

// orderedActivities applies the ledger's listing contract: activity date
// descending, insertion order descending within the same date.
func orderedActivities(db *gorm.DB, farmerProfileID uint) ([]models.FarmActivity, error) {
	var activities []models.FarmActivity
	err := db.Where("farmer_profile_id = ?", farmerProfileID).
		Order("activity_date DESC").
		Order("id DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
