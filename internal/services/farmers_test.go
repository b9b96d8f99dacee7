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

func TestSyncUserCreatesFarmerOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())
	ctx := context.Background()

	first, err := service.SyncUser(ctx, "subject-1", "+254700000001")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFarmer, first.Role)
	assert.False(t, first.IsProfileComplete)

	// Second sync returns the same farmer, no duplicate rows
	second, err := service.SyncUser(ctx, "subject-1", "+254700000001")
	require.NoError(t, err)
	assert.Equal(t, first.FarmerID, second.FarmerID)

	var profileCount, farmerCount int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profileCount).Error)
	require.NoError(t, db.Model(&models.FarmerProfile{}).Count(&farmerCount).Error)
	assert.Equal(t, int64(1), profileCount)
	assert.Equal(t, int64(1), farmerCount)
}

func TestSyncUserRepairsMissingFarmerRow(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())
	ctx := context.Background()

	// A profile without its farmer row, as a failed first sync could leave
	profile := models.Profile{
		ID:        uuid.New(),
		SubjectID: "subject-orphan",
		Role:      models.RoleFarmer,
	}
	require.NoError(t, db.Create(&profile).Error)

	sync, err := service.SyncUser(ctx, "subject-orphan", "")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, sync.FarmerID)

	var farmer models.FarmerProfile
	require.NoError(t, db.Where("profile_id = ?", profile.ID).First(&farmer).Error)
	assert.Equal(t, models.TrustLevelNew, farmer.TrustLevel)

	var farmerCount int64
	require.NoError(t, db.Model(&models.FarmerProfile{}).Count(&farmerCount).Error)
	assert.Equal(t, int64(1), farmerCount)
}

func TestSyncUserRequiresSubject(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())

	_, err := service.SyncUser(context.Background(), "", "+254700000001")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateProfileMarksComplete(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())
	ctx := context.Background()

	sync, err := service.SyncUser(ctx, "subject-2", "+254700000002")
	require.NoError(t, err)

	farmerID, err := service.UpdateProfile(ctx, "subject-2", "Amina Wanjiku", "Nakuru", "Maize", "2 acres")
	require.NoError(t, err)
	assert.Equal(t, sync.FarmerID, farmerID)

	view, err := service.GetProfile(ctx, "subject-2")
	require.NoError(t, err)
	assert.Equal(t, "Amina Wanjiku", view.FullName)
	assert.Equal(t, "Nakuru", view.Location)
	assert.Equal(t, "Maize", view.MainCrop)
	assert.Equal(t, "2 acres", view.FarmSize)

	var profile models.Profile
	require.NoError(t, db.Where("subject_id = ?", "subject-2").First(&profile).Error)
	assert.True(t, profile.IsProfileComplete)
}

func TestUpdateProfileUnknownSubject(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())

	_, err := service.UpdateProfile(context.Background(), "nobody", "A", "B", "C", "D")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHomeView(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())
	ctx := context.Background()

	sync, err := service.SyncUser(ctx, "subject-3", "+254700000003")
	require.NoError(t, err)

	t.Run("new farmer without name or history", func(t *testing.T) {
		view, err := service.Home(ctx, "subject-3")
		require.NoError(t, err)
		assert.Equal(t, "Farmer", view.GreetingName)
		assert.Equal(t, "new_farmer", view.FarmStatus)
		assert.Equal(t, models.TrustLevelNew, view.TrustLevel)
		assert.Equal(t, []string{"Log farm activity"}, view.PendingActions)
	})

	t.Run("whitespace-only name falls back to default greeting", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, "subject-3", "   ", "Kisumu", "Tea", "1 acre")
		require.NoError(t, err)

		view, err := service.Home(ctx, "subject-3")
		require.NoError(t, err)
		assert.Equal(t, "Farmer", view.GreetingName)
	})

	t.Run("greets by first name once profile is filled", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, "subject-3", "Joseph Otieno", "Kisumu", "Tea", "1 acre")
		require.NoError(t, err)

		view, err := service.Home(ctx, "subject-3")
		require.NoError(t, err)
		assert.Equal(t, "Joseph", view.GreetingName)
	})

	t.Run("record is growing once history exists", func(t *testing.T) {
		recordTestActivities(t, db, sync.FarmerID, "2024-01-15")

		view, err := service.Home(ctx, "subject-3")
		require.NoError(t, err)
		assert.Equal(t, "record_growing", view.FarmStatus)
		assert.Empty(t, view.PendingActions)
	})
}

func TestTrustLevelView(t *testing.T) {
	db := setupTestDB(t)
	service := NewFarmerService(db, NewFarmerLocks())
	ctx := context.Background()

	sync, err := service.SyncUser(ctx, "subject-4", "+254700000004")
	require.NoError(t, err)

	t.Run("no history", func(t *testing.T) {
		view, err := service.TrustLevel(ctx, "subject-4")
		require.NoError(t, err)
		assert.Equal(t, models.TrustLevelNew, view.TrustLevel)
		assert.Equal(t, "red", view.StatusColor)
		assert.Equal(t, []string{"Please start logging your farm activities to build trust."}, view.Explanation)
		assert.NotEmpty(t, view.Tips)
	})

	t.Run("with history", func(t *testing.T) {
		recordTestActivities(t, db, sync.FarmerID, "2024-01-15")

		view, err := service.TrustLevel(ctx, "subject-4")
		require.NoError(t, err)
		assert.Len(t, view.Explanation, 2)
	})

	t.Run("color follows level", func(t *testing.T) {
		require.NoError(t, db.Model(&models.FarmerProfile{}).
			Where("profile_id = ?", sync.FarmerID).
			Update("trust_level", models.TrustLevelGood).Error)

		view, err := service.TrustLevel(ctx, "subject-4")
		require.NoError(t, err)
		assert.Equal(t, "green", view.StatusColor)
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "green", models.TrustLevelGood.StatusColor())
	assert.Equal(t, "yellow", models.TrustLevelFair.StatusColor())
	assert.Equal(t, "red", models.TrustLevelNew.StatusColor())
}
