package models

import (
	"time"

	"github.com/google/uuid"
)

// TrustLevel is the discrete classification summarizing a farmer's
// engagement history
type TrustLevel string

const (
	TrustLevelNew  TrustLevel = "New"
	TrustLevelFair TrustLevel = "Fair"
	TrustLevelGood TrustLevel = "Good"
)

// StatusColor maps a trust level to the color shown in farmer-facing views.
// Derived on read, never stored.
func (t TrustLevel) StatusColor() string {
	switch t {
	case TrustLevelGood:
		return "green"
	case TrustLevelFair:
		return "yellow"
	default:
		return "red"
	}
}

// FarmerProfile holds the farm-facing attributes and the derived trust state
// for a profile with the farmer role. All descriptive fields are optional
// free text filled in by profile completion.
type FarmerProfile struct {
	ID            uint       `json:"-" db:"id" gorm:"primaryKey"`
	ProfileID     uuid.UUID  `json:"profile_id" db:"profile_id" gorm:"type:uuid;uniqueIndex;not null"`
	FullName      string     `json:"full_name" db:"full_name"`
	Location      string     `json:"location" db:"location"`
	MainCrop      string     `json:"main_crop" db:"main_crop"`
	FarmSize      string     `json:"farm_size" db:"farm_size"`
	TrustLevel    TrustLevel `json:"trust_level" db:"trust_level" gorm:"default:New"`
	InternalScore int        `json:"internal_score" db:"internal_score" gorm:"default:0"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Activities []FarmActivity `json:"activities,omitempty" gorm:"foreignKey:FarmerProfileID"`
}

// TableName sets the table name for the FarmerProfile model
func (FarmerProfile) TableName() string {
	return "farmer_profiles"
}
