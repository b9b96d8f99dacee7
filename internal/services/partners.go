package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"agrotrust/internal/apperrors"
	"agrotrust/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerService serves the read-only partner projections: filtered
// listings, per-farmer detail, and the flat export rows.
type PartnerService struct {
	db *gorm.DB
}

// NewPartnerService creates a new partner service
func NewPartnerService(db *gorm.DB) *PartnerService {
	return &PartnerService{db: db}
}

// PartnerFilter narrows the farmer listing. All present conditions must
// hold: trust level matches exactly, location and crop by case-insensitive
// substring.
type PartnerFilter struct {
	TrustLevel string
	Location   string
	Crop       string
}

// PartnerFarmer is one row of the partner listing
type PartnerFarmer struct {
	FarmerID   uuid.UUID         `json:"farmer_id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	MainCrop   string            `json:"main_crop"`
	TrustLevel models.TrustLevel `json:"trust_level"`
}

// PartnerFarmerDetail is the per-farmer partner view with full history
type PartnerFarmerDetail struct {
	Profile    PartnerFarmerProfile  `json:"profile"`
	TrustLevel models.TrustLevel     `json:"trust_level"`
	Activities []PartnerActivityItem `json:"activities"`
}

// PartnerFarmerProfile is the profile block of the partner detail view
type PartnerFarmerProfile struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	MainCrop string `json:"main_crop"`
}

// PartnerActivityItem is one activity row in the partner detail view
type PartnerActivityItem struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// ExportHeader is the fixed column order of the farmer export
var ExportHeader = []string{"ID", "Name", "Location", "Main Crop", "Trust Level", "Internal Score"}

// ListFarmers returns all farmers matching the filter
func (s *PartnerService) ListFarmers(ctx context.Context, filter PartnerFilter) ([]PartnerFarmer, error) {
	query := s.db.WithContext(ctx).Model(&models.FarmerProfile{})

	if filter.TrustLevel != "" {
		query = query.Where("trust_level = ?", filter.TrustLevel)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Crop != "" {
		query = query.Where("LOWER(main_crop) LIKE ?", "%"+strings.ToLower(filter.Crop)+"%")
	}

	var farmers []models.FarmerProfile
	if err := query.Find(&farmers).Error; err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}

	results := make([]PartnerFarmer, 0, len(farmers))
	for _, f := range farmers {
		results = append(results, PartnerFarmer{
			FarmerID:   f.ProfileID,
			Name:       f.FullName,
			Location:   f.Location,
			MainCrop:   f.MainCrop,
			TrustLevel: f.TrustLevel,
		})
	}

	return results, nil
}

// FarmerDetail returns the partner view of a single farmer, including the
// full activity history in ledger order.
func (s *PartnerService) FarmerDetail(ctx context.Context, farmerID uuid.UUID) (*PartnerFarmerDetail, error) {
	var farmer models.FarmerProfile
	err := s.db.WithContext(ctx).Where("profile_id = ?", farmerID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Farmer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up farmer profile: %w", err)
	}

	activities, err := orderedActivities(s.db.WithContext(ctx), farmer.ID)
	if err != nil {
		return nil, err
	}

	items := make([]PartnerActivityItem, 0, len(activities))
	for _, a := range activities {
		items = append(items, PartnerActivityItem{
			Type: a.ActivityType,
			Date: a.ActivityDate.Format(activityDateLayout),
		})
	}

	return &PartnerFarmerDetail{
		Profile: PartnerFarmerProfile{
			Name:     farmer.FullName,
			Location: farmer.Location,
			MainCrop: farmer.MainCrop,
		},
		TrustLevel: farmer.TrustLevel,
		Activities: items,
	}, nil
}

// ExportRows returns every farmer as a flat row matching ExportHeader
func (s *PartnerService) ExportRows(ctx context.Context) ([][]string, error) {
	var farmers []models.FarmerProfile
	if err := s.db.WithContext(ctx).Find(&farmers).Error; err != nil {
		return nil, fmt.Errorf("failed to export farmers: %w", err)
	}

	rows := make([][]string, 0, len(farmers))
	for _, f := range farmers {
		rows = append(rows, []string{
			f.ProfileID.String(),
			f.FullName,
			f.Location,
			f.MainCrop,
			string(f.TrustLevel),
			strconv.Itoa(f.InternalScore),
		})
	}

	return rows, nil
}
