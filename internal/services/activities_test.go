package services

import (
	"context"
	"testing"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivity(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	ctx := context.Background()

	farmerID := createTestFarmer(t, db, "subj-record", "Amina", "Nakuru", "Maize")

	activity, err := service.Record(ctx, farmerID, "planting", "2024-01-15", "first planting", "https://photos.example/1.jpg")
	require.NoError(t, err)
	assert.NotZero(t, activity.ID)
	assert.Equal(t, "planting", activity.ActivityType)
	assert.Equal(t, "2024-01-15", activity.ActivityDate.Format("2006-01-02"))
	assert.Equal(t, models.SyncStatusSynced, activity.SyncStatus)
	assert.Equal(t, "first planting", activity.Notes)
}

func TestRecordActivityUnknownFarmer(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)

	_, err := service.Record(context.Background(), uuid.New(), "planting", "2024-01-15", "", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordActivityInvalidDate(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	ctx := context.Background()

	farmerID := createTestFarmer(t, db, "subj-baddate", "Amina", "Nakuru", "Maize")

	invalidDates := []string{"2024-13-40", "15-01-2024", "yesterday", ""}
	for _, date := range invalidDates {
		_, err := service.Record(ctx, farmerID, "planting", date, "", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "date=%q", date)
	}

	// A failed append leaves the ledger unchanged
	var count int64
	require.NoError(t, db.Model(&models.FarmActivity{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListActivitiesOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	ctx := context.Background()

	farmerID := createTestFarmer(t, db, "subj-order", "Amina", "Nakuru", "Maize")
	recordTestActivities(t, db, farmerID, "2024-01-01", "2024-03-01", "2024-02-01")

	activities, err := service.List(ctx, farmerID)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	assert.Equal(t, "2024-03-01", activities[0].ActivityDate.Format("2006-01-02"))
	assert.Equal(t, "2024-02-01", activities[1].ActivityDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-01", activities[2].ActivityDate.Format("2006-01-02"))
}

func TestListActivitiesSameDateTieBreak(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	ctx := context.Background()

	farmerID := createTestFarmer(t, db, "subj-tie", "Amina", "Nakuru", "Maize")

	first, err := service.Record(ctx, farmerID, "watering", "2024-02-01", "", "")
	require.NoError(t, err)
	second, err := service.Record(ctx, farmerID, "weeding", "2024-02-01", "", "")
	require.NoError(t, err)

	activities, err := service.List(ctx, farmerID)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	// Most recently recorded first within the same activity date
	assert.Equal(t, second.ID, activities[0].ID)
	assert.Equal(t, first.ID, activities[1].ID)
}

func TestListActivitiesUnknownFarmer(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)

	_, err := service.List(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHasHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	ctx := context.Background()

	farmerID := createTestFarmer(t, db, "subj-history", "Amina", "Nakuru", "Maize")

	hasHistory, err := service.HasHistory(ctx, farmerID)
	require.NoError(t, err)
	assert.False(t, hasHistory)

	recordTestActivities(t, db, farmerID, "2024-01-15")

	hasHistory, err = service.HasHistory(ctx, farmerID)
	require.NoError(t, err)
	assert.True(t, hasHistory)
}
