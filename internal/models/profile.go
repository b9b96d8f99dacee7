package models

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies what kind of account a profile belongs to
type Role string

const (
	RoleFarmer  Role = "farmer"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

// Profile represents an account synced from the external identity provider.
// The subject id is issued by the token issuer and treated as opaque here.
type Profile struct {
	ID                uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	SubjectID         string    `json:"subject_id" db:"subject_id" gorm:"uniqueIndex;not null"`
	Phone             string    `json:"phone" db:"phone" gorm:"index"`
	Role              Role      `json:"role" db:"role" gorm:"default:farmer"`
	IsProfileComplete bool      `json:"is_profile_complete" db:"is_profile_complete" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
