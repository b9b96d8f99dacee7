package handlers

import (
	"net/http"

	"agrotrust/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FarmerHandler handles identity sync and farmer self-service endpoints
type FarmerHandler struct {
	farmerService *services.FarmerService
}

// NewFarmerHandler creates a new farmer handler
func NewFarmerHandler(db *gorm.DB, locks *services.FarmerLocks) *FarmerHandler {
	return &FarmerHandler{
		farmerService: services.NewFarmerService(db, locks),
	}
}

// SyncUserRequest is the identity sync payload from the auth collaborator
type SyncUserRequest struct {
	SupabaseUserID string `json:"supabase_user_id" binding:"required"`
	Phone          string `json:"phone"`
}

// FarmerProfileRequest is the profile completion payload
type FarmerProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Location string `json:"location" binding:"required"`
	MainCrop string `json:"main_crop" binding:"required"`
	FarmSize string `json:"farm_size" binding:"required"`
}

// SyncUser handles POST /auth/sync-user
func (h *FarmerHandler) SyncUser(c *gin.Context) {
	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	result, err := h.farmerService.SyncUser(c.Request.Context(), req.SupabaseUserID, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateProfile handles POST /farmers/profile
func (h *FarmerHandler) CreateProfile(c *gin.Context) {
	var req FarmerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	farmerID, err := h.farmerService.UpdateProfile(
		c.Request.Context(),
		c.GetString(subjectKey),
		req.FullName, req.Location, req.MainCrop, req.FarmSize,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "created",
		"farmer_id": farmerID,
	})
}

// GetProfile handles GET /farmers/profile
func (h *FarmerHandler) GetProfile(c *gin.Context) {
	view, err := h.farmerService.GetProfile(c.Request.Context(), c.GetString(subjectKey))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Home handles GET /farmers/home
func (h *FarmerHandler) Home(c *gin.Context) {
	view, err := h.farmerService.Home(c.Request.Context(), c.GetString(subjectKey))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// TrustLevel handles GET /farmers/trust-level
func (h *FarmerHandler) TrustLevel(c *gin.Context) {
	view, err := h.farmerService.TrustLevel(c.Request.Context(), c.GetString(subjectKey))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// LoanStatus handles GET /loans/status. Lending decisions are made by
// partner organizations, not this service.
func (h *FarmerHandler) LoanStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loan_status": "Not Available",
		"message":     "Loans will be available through partner organizations",
	})
}
