package services

import (
	"context"
	"fmt"

	"agrotrust/internal/models"

	"gorm.io/gorm"
)

// DashboardService aggregates counts for the admin dashboard
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats is the admin dashboard aggregate view
type DashboardStats struct {
	TotalFarmers      int64                       `json:"total_farmers"`
	TotalActivities   int64                       `json:"total_activities"`
	TrustDistribution map[models.TrustLevel]int64 `json:"trust_distribution"`
}

// Stats returns farmer/activity totals and the trust-level histogram. All
// three levels are always present; levels with no farmers report zero.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TrustDistribution: map[models.TrustLevel]int64{
			models.TrustLevelNew:  0,
			models.TrustLevelFair: 0,
			models.TrustLevelGood: 0,
		},
	}

	err := s.db.WithContext(ctx).Model(&models.FarmerProfile{}).
		Count(&stats.TotalFarmers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count farmers: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.FarmActivity{}).
		Count(&stats.TotalActivities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	type levelCount struct {
		TrustLevel models.TrustLevel
		Count      int64
	}
	var counts []levelCount
	err = s.db.WithContext(ctx).Model(&models.FarmerProfile{}).
		Select("trust_level, COUNT(*) as count").
		Group("trust_level").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build trust histogram: %w", err)
	}

	for _, c := range counts {
		if _, known := stats.TrustDistribution[c.TrustLevel]; known {
			stats.TrustDistribution[c.TrustLevel] = c.Count
		}
	}

	return stats, nil
}
