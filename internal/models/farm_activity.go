package models

import (
	"time"
)

// SyncStatus reflects whether a client-side write has been durably accepted
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusFailed  SyncStatus = "failed"
)

// FarmActivity is an immutable, farmer-asserted activity record. The
// activity date is the calendar date the farmer reports; CreatedAt is when
// the server accepted the record. Only the sync status may change after
// creation.
type FarmActivity struct {
	ID              uint       `json:"id" db:"id" gorm:"primaryKey"`
	FarmerProfileID uint       `json:"-" db:"farmer_profile_id" gorm:"index;not null"`
	ActivityType    string     `json:"activity_type" db:"activity_type" gorm:"not null"`
	ActivityDate    time.Time  `json:"activity_date" db:"activity_date" gorm:"not null"`
	Notes           string     `json:"notes,omitempty" db:"notes"`
	PhotoURL        string     `json:"photo_url,omitempty" db:"photo_url"`
	SyncStatus      SyncStatus `json:"sync_status" db:"sync_status" gorm:"default:synced"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the FarmActivity model
func (FarmActivity) TableName() string {
	return "farm_activities"
}
