package models

import "time"

const (
	PenaltyPercentTotal      = "PERCENT_TOTAL"
	PenaltyPercentFirstNight = "PERCENT_FIRST_NIGHT"
	PenaltyFixedNights       = "FIXED_NIGHTS"
)

type CancellationPolicy struct {
	ID    uint               `gorm:"primaryKey" json:"id"`
	Name  string             `gorm:"size:100" json:"name"`
	Rules []CancellationRule `gorm:"foreignKey:PolicyID" json:"rules"`
}

// CancellationRule applies when the cancellation happens between
// DaysBeforeMin and DaysBeforeMax days (inclusive) before check-in.
type CancellationRule struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PolicyID      uint   `gorm:"index;column:policy_id" json:"policy_id"`
	DaysBeforeMin int    `gorm:"column:days_before_min" json:"days_before_min"`
	DaysBeforeMax int    `gorm:"column:days_before_max" json:"days_before_max"`
	PenaltyType   string `gorm:"column:penalty_type;size:32" json:"penalty_type"`
	PenaltyValue  int64  `gorm:"column:penalty_value" json:"penalty_value"`
}

// SpecialPeriod marks a peak season where the hotel's peak policy applies.
type SpecialPeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	StartDate time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date" json:"end_date"`
}
