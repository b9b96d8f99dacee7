package models

// Default trust scoring weights, applied when the config row is lazily
// created on first use.
const (
	DefaultProfileWeight           = 20
	DefaultActivityFrequencyWeight = 50
	DefaultConsistencyWeight       = 30
)

// TrustConfigID is the fixed primary key of the singleton config row.
const TrustConfigID uint = 1

// TrustConfig holds the weights for trust score computation. Exactly one
// row is active at any time. The weights need not sum to 100; the scoring
// engine normalizes against their sum when it combines sub-scores.
type TrustConfig struct {
	ID                      uint `json:"id" db:"id" gorm:"primaryKey"`
	ProfileWeight           int  `json:"profile_weight" db:"profile_weight" gorm:"default:20"`
	ActivityFrequencyWeight int  `json:"activity_frequency_weight" db:"activity_frequency_weight" gorm:"default:50"`
	ConsistencyWeight       int  `json:"consistency_weight" db:"consistency_weight" gorm:"default:30"`
}

// TableName sets the table name for the TrustConfig model
func (TrustConfig) TableName() string {
	return "trust_configs"
}
