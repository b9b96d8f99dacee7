package handlers

import (
	"errors"
	"net/http"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/models"
	"agrotrust/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityHandler handles the farm activity ledger endpoints
type ActivityHandler struct {
	db              *gorm.DB
	activityService *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{
		db:              db,
		activityService: services.NewActivityService(db),
	}
}

// FarmActivityRequest is the activity ingestion payload
type FarmActivityRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
	ActivityDate string `json:"activity_date" binding:"required"`
	Notes        string `json:"notes"`
	PhotoURL     string `json:"photo_url"`
}

// ActivityItem is one row of the farmer's own activity listing
type ActivityItem struct {
	ActivityType string `json:"activity_type"`
	ActivityDate string `json:"activity_date"`
	CreatedAt    string `json:"created_at"`
}

// Record handles POST /farm-activities
func (h *ActivityHandler) Record(c *gin.Context) {
	var req FarmActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	farmerID, err := h.farmerIDForSubject(c)
	if err != nil {
		respondError(c, err)
		return
	}

	activity, err := h.activityService.Record(
		c.Request.Context(), farmerID,
		req.ActivityType, req.ActivityDate, req.Notes, req.PhotoURL,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "saved",
		"activity_id": activity.ID,
		"sync_status": activity.SyncStatus,
	})
}

// List handles GET /farm-activities
func (h *ActivityHandler) List(c *gin.Context) {
	farmerID, err := h.farmerIDForSubject(c)
	if err != nil {
		respondError(c, err)
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]ActivityItem, 0, len(activities))
	for _, a := range activities {
		items = append(items, ActivityItem{
			ActivityType: a.ActivityType,
			ActivityDate: a.ActivityDate.Format("2006-01-02"),
			CreatedAt:    a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, items)
}

// farmerIDForSubject maps the authenticated subject to its farmer id
func (h *ActivityHandler) farmerIDForSubject(c *gin.Context) (uuid.UUID, error) {
	var profile models.Profile
	err := h.db.WithContext(c.Request.Context()).
		Where("subject_id = ?", c.GetString(subjectKey)).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, apperrors.NotFound("Profile not found")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}
