package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FarmerService handles identity sync and farmer profile reads/writes
type FarmerService struct {
	db    *gorm.DB
	locks *FarmerLocks
}

// NewFarmerService creates a new farmer service
func NewFarmerService(db *gorm.DB, locks *FarmerLocks) *FarmerService {
	return &FarmerService{db: db, locks: locks}
}

// SyncResult is returned from identity sync
type SyncResult struct {
	FarmerID          uuid.UUID   `json:"user_id"`
	Role              models.Role `json:"role"`
	IsProfileComplete bool        `json:"is_profile_complete"`
}

// ProfileView is the farmer's own profile projection
type ProfileView struct {
	FullName  string    `json:"full_name"`
	Location  string    `json:"location"`
	MainCrop  string    `json:"main_crop"`
	FarmSize  string    `json:"farm_size"`
	CreatedAt time.Time `json:"created_at"`
}

// HomeView is the farmer home screen projection
type HomeView struct {
	GreetingName   string            `json:"greeting_name"`
	FarmStatus     string            `json:"farm_status"`
	TrustLevel     models.TrustLevel `json:"trust_level"`
	PendingActions []string          `json:"pending_actions"`
}

// TrustView explains the farmer's current trust level
type TrustView struct {
	TrustLevel  models.TrustLevel `json:"trust_level"`
	StatusColor string            `json:"status_color"`
	Explanation []string          `json:"explanation"`
	Tips        []string          `json:"tips"`
}

// SyncUser gets or creates the profile for an external subject id. The
// first sync also creates the farmer profile with default trust state.
// Concurrent first syncs for the same subject converge on one row.
func (s *FarmerService) SyncUser(ctx context.Context, subjectID, phone string) (*SyncResult, error) {
	if subjectID == "" {
		return nil, apperrors.InvalidInput("subject id is required")
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			ID:        uuid.New(),
			SubjectID: subjectID,
			Phone:     phone,
			Role:      models.RoleFarmer,
		}
		// Profile and farmer profile are created together or not at all
		createErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			farmer := models.FarmerProfile{
				ProfileID:  profile.ID,
				TrustLevel: models.TrustLevelNew,
			}
			return tx.Create(&farmer).Error
		})
		if createErr != nil {
			// A concurrent sync may have created the rows first
			if refetchErr := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&profile).Error; refetchErr != nil {
				return nil, fmt.Errorf("failed to sync user: %w", createErr)
			}
			if err := s.ensureFarmerRow(ctx, profile.ID); err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	} else {
		// Repair a profile left without its farmer row by a failed first sync
		if err := s.ensureFarmerRow(ctx, profile.ID); err != nil {
			return nil, err
		}
	}

	return &SyncResult{
		FarmerID:          profile.ID,
		Role:              profile.Role,
		IsProfileComplete: profile.IsProfileComplete,
	}, nil
}

// UpdateProfile fills in the farmer's descriptive fields and marks the
// profile complete. Serialized per farmer with recompute.
func (s *FarmerService) UpdateProfile(ctx context.Context, subjectID, fullName, location, mainCrop, farmSize string) (uuid.UUID, error) {
	profile, farmer, err := s.bySubject(ctx, subjectID)
	if err != nil {
		return uuid.Nil, err
	}

	s.locks.Lock(farmer.ID)
	defer s.locks.Unlock(farmer.ID)

	updates := map[string]interface{}{
		"full_name": fullName,
		"location":  location,
		"main_crop": mainCrop,
		"farm_size": farmSize,
	}
	if err := s.db.WithContext(ctx).Model(farmer).Updates(updates).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to update farmer profile: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(profile).Update("is_profile_complete", true).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to mark profile complete: %w", err)
	}

	return profile.ID, nil
}

// GetProfile returns the farmer's own profile view
func (s *FarmerService) GetProfile(ctx context.Context, subjectID string) (*ProfileView, error) {
	profile, farmer, err := s.bySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		FullName:  farmer.FullName,
		Location:  farmer.Location,
		MainCrop:  farmer.MainCrop,
		FarmSize:  farmer.FarmSize,
		CreatedAt: profile.CreatedAt,
	}, nil
}

// Home returns the farmer home screen view. The farm status flips from
// new_farmer to record_growing once any activity has been recorded.
func (s *FarmerService) Home(ctx context.Context, subjectID string) (*HomeView, error) {
	_, farmer, err := s.bySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	hasHistory, err := s.hasActivities(ctx, farmer.ID)
	if err != nil {
		return nil, err
	}

	greetingName := "Farmer"
	if fields := strings.Fields(farmer.FullName); len(fields) > 0 {
		greetingName = fields[0]
	}

	view := &HomeView{
		GreetingName:   greetingName,
		FarmStatus:     "new_farmer",
		TrustLevel:     farmer.TrustLevel,
		PendingActions: []string{"Log farm activity"},
	}
	if hasHistory {
		view.FarmStatus = "record_growing"
		view.PendingActions = []string{}
	}

	return view, nil
}

// TrustLevel returns the trust explanation view for the farmer
func (s *FarmerService) TrustLevel(ctx context.Context, subjectID string) (*TrustView, error) {
	_, farmer, err := s.bySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	hasHistory, err := s.hasActivities(ctx, farmer.ID)
	if err != nil {
		return nil, err
	}

	explanation := []string{"Please start logging your farm activities to build trust."}
	if hasHistory {
		explanation = []string{
			"You are logging farm activities",
			"More consistency will improve your trust",
		}
	}

	return &TrustView{
		TrustLevel:  farmer.TrustLevel,
		StatusColor: farmer.TrustLevel.StatusColor(),
		Explanation: explanation,
		Tips: []string{
			"Record activities weekly",
			"Add photos when possible",
		},
	}, nil
}

func (s *FarmerService) hasActivities(ctx context.Context, farmerProfileID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FarmActivity{}).
		Where("farmer_profile_id = ?", farmerProfileID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count activities: %w", err)
	}
	return count > 0, nil
}

// ensureFarmerRow gets or creates the farmer profile for a synced profile
func (s *FarmerService) ensureFarmerRow(ctx context.Context, profileID uuid.UUID) error {
	var farmer models.FarmerProfile
	err := s.db.WithContext(ctx).
		Where(models.FarmerProfile{ProfileID: profileID}).
		Attrs(models.FarmerProfile{TrustLevel: models.TrustLevelNew}).
		FirstOrCreate(&farmer).Error
	if err != nil {
		return fmt.Errorf("failed to ensure farmer profile: %w", err)
	}
	return nil
}

// bySubject resolves a subject id to its profile and farmer profile
func (s *FarmerService) bySubject(ctx context.Context, subjectID string) (*models.Profile, *models.FarmerProfile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.NotFound("Profile not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	var farmer models.FarmerProfile
	err = s.db.WithContext(ctx).Where("profile_id = ?", profile.ID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.NotFound("Farmer not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up farmer profile: %w", err)
	}

	return &profile, &farmer, nil
}
