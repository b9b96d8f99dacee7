package services

import (
	"context"
	"testing"

	"agrotrust/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewDashboardService(db)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalFarmers)
	assert.Equal(t, int64(0), stats.TotalActivities)

	// Missing levels report zero, not absence
	require.Len(t, stats.TrustDistribution, 3)
	assert.Equal(t, int64(0), stats.TrustDistribution[models.TrustLevelNew])
	assert.Equal(t, int64(0), stats.TrustDistribution[models.TrustLevelFair])
	assert.Equal(t, int64(0), stats.TrustDistribution[models.TrustLevelGood])
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	service := NewDashboardService(db)
	ctx := context.Background()

	farmerA := createTestFarmer(t, db, "subj-dash-a", "A", "Nakuru", "Maize")
	farmerB := createTestFarmer(t, db, "subj-dash-b", "B", "Kisumu", "Tea")
	createTestFarmer(t, db, "subj-dash-c", "C", "Nairobi", "Beans")

	recordTestActivities(t, db, farmerA, "2024-01-01", "2024-01-02")
	recordTestActivities(t, db, farmerB, "2024-01-03")

	require.NoError(t, db.Model(&models.FarmerProfile{}).
		Where("profile_id = ?", farmerA).
		Update("trust_level", models.TrustLevelFair).Error)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalFarmers)
	assert.Equal(t, int64(3), stats.TotalActivities)
	assert.Equal(t, int64(2), stats.TrustDistribution[models.TrustLevelNew])
	assert.Equal(t, int64(1), stats.TrustDistribution[models.TrustLevelFair])
	assert.Equal(t, int64(0), stats.TrustDistribution[models.TrustLevelGood])
}
