package handlers

import (
	"net/http"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrustHandler handles the internal trust scoring endpoints
type TrustHandler struct {
	trustService *services.TrustService
}

// NewTrustHandler creates a new trust handler
func NewTrustHandler(db *gorm.DB, locks *services.FarmerLocks) *TrustHandler {
	return &TrustHandler{
		trustService: services.NewTrustService(db, locks),
	}
}

// CalculateTrustRequest identifies the farmer whose trust to recompute
type CalculateTrustRequest struct {
	FarmerID string `json:"farmer_id" binding:"required"`
}

// TrustConfigRequest carries replacement scoring weights
type TrustConfigRequest struct {
	ProfileWeight           int `json:"profile_weight"`
	ActivityFrequencyWeight int `json:"activity_frequency_weight"`
	ConsistencyWeight       int `json:"consistency_weight"`
}

// CalculateTrust handles POST /internal/calculate-trust
func (h *TrustHandler) CalculateTrust(c *gin.Context) {
	var req CalculateTrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	farmerID, err := uuid.Parse(req.FarmerID)
	if err != nil {
		respondError(c, apperrors.InvalidInput("invalid farmer id"))
		return
	}

	level, score, err := h.trustService.Recompute(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trust_level":    level,
		"internal_score": score,
	})
}

// UpdateConfig handles PUT /internal/trust-config
func (h *TrustHandler) UpdateConfig(c *gin.Context) {
	var req TrustConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	cfg, err := h.trustService.UpdateConfig(
		c.Request.Context(),
		req.ProfileWeight, req.ActivityFrequencyWeight, req.ConsistencyWeight,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}
