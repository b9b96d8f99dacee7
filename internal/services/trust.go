package services

import (
	"context"
	"errors"
	"fmt"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/logger"
	"agrotrust/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TrustService recomputes the derived trust score and level for farmers.
// It reads activity history and the scoring config and writes back the
// score/level pair; it never mutates the ledger.
type TrustService struct {
	db    *gorm.DB
	locks *FarmerLocks
}

// NewTrustService creates a new trust service
func NewTrustService(db *gorm.DB, locks *FarmerLocks) *TrustService {
	return &TrustService{db: db, locks: locks}
}

// ScoreFromActivityCount computes the internal score for a farmer with n
// recorded activities. The configured weights are accepted for the future
// multi-factor formula but V1 is activity-count driven: min(n*10, 100).
func ScoreFromActivityCount(n int, cfg *models.TrustConfig) int {
	score := n * 10
	if score > 100 {
		score = 100
	}
	return score
}

// LevelForScore maps an internal score to its trust level. The boundaries
// are fixed: above 70 is Good, above 30 is Fair, everything else is New.
func LevelForScore(score int) models.TrustLevel {
	switch {
	case score > 70:
		return models.TrustLevelGood
	case score > 30:
		return models.TrustLevelFair
	default:
		return models.TrustLevelNew
	}
}

// Recompute recalculates and persists the farmer's score and trust level.
// The score/level pair is written in a single UPDATE and recomputes for the
// same farmer are serialized, so no observer sees a torn pair.
func (s *TrustService) Recompute(ctx context.Context, farmerID uuid.UUID) (models.TrustLevel, int, error) {
	var farmer models.FarmerProfile
	err := s.db.WithContext(ctx).Where("profile_id = ?", farmerID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, apperrors.NotFound("Farmer not found")
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to look up farmer profile: %w", err)
	}

	s.locks.Lock(farmer.ID)
	defer s.locks.Unlock(farmer.ID)

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return "", 0, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.FarmActivity{}).
		Where("farmer_profile_id = ?", farmer.ID).
		Count(&count).Error
	if err != nil {
		return "", 0, fmt.Errorf("failed to count activities: %w", err)
	}

	score := ScoreFromActivityCount(int(count), cfg)
	level := LevelForScore(score)

	// Single UPDATE keeps score and level consistent for every reader
	err = s.db.WithContext(ctx).Model(&farmer).Updates(map[string]interface{}{
		"internal_score": score,
		"trust_level":    level,
	}).Error
	if err != nil {
		return "", 0, fmt.Errorf("failed to persist trust score: %w", err)
	}

	return level, score, nil
}

// RecomputeAll recalculates trust for every farmer. Used by the periodic
// worker and the batch command; individual failures are logged and skipped.
func (s *TrustService) RecomputeAll(ctx context.Context) error {
	var farmerIDs []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.FarmerProfile{}).
		Pluck("profile_id", &farmerIDs).Error
	if err != nil {
		return fmt.Errorf("failed to list farmers: %w", err)
	}

	for _, id := range farmerIDs {
		if _, _, err := s.Recompute(ctx, id); err != nil {
			logger.Warn("trust recompute failed",
				zap.String("farmer_id", id.String()),
				zap.Error(err))
		}
	}

	return nil
}

// loadConfig reads the current scoring config, creating the singleton row
// with default weights on first use. Read-through on every call; a losing
// concurrent creator observes the winner's row.
func (s *TrustService) loadConfig(ctx context.Context) (*models.TrustConfig, error) {
	cfg := models.TrustConfig{ID: models.TrustConfigID}
	err := s.db.WithContext(ctx).
		Where(models.TrustConfig{ID: models.TrustConfigID}).
		Attrs(models.TrustConfig{
			ProfileWeight:           models.DefaultProfileWeight,
			ActivityFrequencyWeight: models.DefaultActivityFrequencyWeight,
			ConsistencyWeight:       models.DefaultConsistencyWeight,
		}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		// Lost a creation race on the fixed primary key; the row exists now
		if refetchErr := s.db.WithContext(ctx).First(&cfg, models.TrustConfigID).Error; refetchErr != nil {
			return nil, fmt.Errorf("failed to load trust config: %w", err)
		}
	}
	return &cfg, nil
}

// UpdateConfig replaces the scoring weights. Privileged callers only.
func (s *TrustService) UpdateConfig(ctx context.Context, profileWeight, activityFrequencyWeight, consistencyWeight int) (*models.TrustConfig, error) {
	if profileWeight < 0 || activityFrequencyWeight < 0 || consistencyWeight < 0 {
		return nil, apperrors.InvalidInput("weights must be non-negative")
	}

	if _, err := s.loadConfig(ctx); err != nil {
		return nil, err
	}

	cfg := models.TrustConfig{
		ID:                      models.TrustConfigID,
		ProfileWeight:           profileWeight,
		ActivityFrequencyWeight: activityFrequencyWeight,
		ConsistencyWeight:       consistencyWeight,
	}
	if err := s.db.WithContext(ctx).Save(&cfg).Error; err != nil {
		return nil, fmt.Errorf("failed to update trust config: %w", err)
	}

	return &cfg, nil
}
