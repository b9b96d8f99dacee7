package handlers

import (
	"encoding/csv"
	"net/http"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerHandler handles the partner read-side endpoints
type PartnerHandler struct {
	partnerService *services.PartnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(db *gorm.DB) *PartnerHandler {
	return &PartnerHandler{
		partnerService: services.NewPartnerService(db),
	}
}

// ListFarmers handles GET /partners/farmers
func (h *PartnerHandler) ListFarmers(c *gin.Context) {
	filter := services.PartnerFilter{
		TrustLevel: c.Query("trust_level"),
		Location:   c.Query("location"),
		Crop:       c.Query("crop"),
	}

	farmers, err := h.partnerService.ListFarmers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, farmers)
}

// FarmerDetail handles GET /partners/farmers/:farmer_id
func (h *PartnerHandler) FarmerDetail(c *gin.Context) {
	farmerID, err := uuid.Parse(c.Param("farmer_id"))
	if err != nil {
		respondError(c, apperrors.InvalidInput("invalid farmer id"))
		return
	}

	detail, err := h.partnerService.FarmerDetail(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ExportFarmers handles GET /partners/export/farmers, streaming every
// farmer's classification as CSV in a fixed column order
func (h *PartnerHandler) ExportFarmers(c *gin.Context) {
	rows, err := h.partnerService.ExportRows(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=farmers.csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(services.ExportHeader); err != nil {
		return
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return
		}
	}
	writer.Flush()
}
