package models

import (
	"strings"
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	// 0 is the principal guest
	Position int `gorm:"column:position" json:"position"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	IsForeign      bool   `gorm:"column:is_foreign;default:false" json:"is_foreign"`
	NationalID     string `gorm:"column:national_id;size:10" json:"national_id,omitempty"`
	PassportNumber string `gorm:"column:passport_number;size:50" json:"passport_number,omitempty"`
	Nationality    string `gorm:"size:50" json:"nationality,omitempty"`

	PhoneNumber string `gorm:"column:phone_number;size:20" json:"phone_number,omitempty"`
	Email       string `gorm:"size:150" json:"email,omitempty"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
}
