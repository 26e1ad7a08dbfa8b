package models

import (
	"time"

	"gorm.io/datatypes"
)

// Hotel booking workflows. An instant hotel expects the guest to pay online
// or by bank transfer; a manual_review hotel has an operator confirm first.
const (
	WorkflowInstant      = "instant"
	WorkflowManualReview = "manual_review"
)

type City struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120" json:"name"`
	Slug string `gorm:"size:120;uniqueIndex" json:"slug"`
}

type Hotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CityID  uint   `gorm:"index;column:city_id" json:"city_id"`
	Name    string `gorm:"size:255" json:"name"`
	Stars   int    `gorm:"column:stars;default:0" json:"stars"`
	Address string `gorm:"type:text" json:"address"`

	Amenities       datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`
	BookingWorkflow string                      `gorm:"column:booking_workflow;size:32;default:instant" json:"booking_workflow"`

	CancellationPolicyNormalID *uint `gorm:"column:cancellation_policy_normal_id" json:"cancellation_policy_normal_id,omitempty"`
	CancellationPolicyPeakID   *uint `gorm:"column:cancellation_policy_peak_id" json:"cancellation_policy_peak_id,omitempty"`

	City City `gorm:"foreignKey:CityID" json:"-"`
}

// HasAmenities reports whether every wanted amenity is offered (case-insensitive).
func (h Hotel) HasAmenities(wanted []string) bool {
	have := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		have[normalizeTag(a)] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := have[normalizeTag(w)]; !ok {
			return false
		}
	}
	return true
}
