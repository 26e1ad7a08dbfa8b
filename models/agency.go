package models

import (
	"time"

	"gorm.io/datatypes"
)

type Agency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name                      string `gorm:"size:255" json:"name"`
	CreditLimit               int64  `gorm:"column:credit_limit;default:0" json:"credit_limit"`
	CurrentBalance            int64  `gorm:"column:current_balance;default:0" json:"current_balance"`
	DefaultDiscountPercentage int    `gorm:"column:default_discount_percentage;default:0" json:"default_discount_percentage"`

	// hotels where this agency may not book on credit
	CreditBlacklist datatypes.JSONSlice[uint] `gorm:"column:credit_blacklist" json:"credit_blacklist"`
}

func (a Agency) IsBlacklisted(hotelID uint) bool {
	for _, id := range a.CreditBlacklist {
		if id == hotelID {
			return true
		}
	}
	return false
}

// AvailableCredit is how much more debt the agency may take on.
func (a Agency) AvailableCredit() int64 {
	return a.CreditLimit - a.CurrentBalance
}

const (
	AgencyTxBooking    = "booking"
	AgencyTxPayment    = "payment"
	AgencyTxRefund     = "refund"
	AgencyTxAdjustment = "adjustment"
)

// AgencyTransaction is one entry of the agency debt ledger. Amount is
// positive for debt taken on (booking) and negative for debt paid or reversed.
type AgencyTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	AgencyID    uint      `gorm:"index;column:agency_id" json:"agency_id"`
	BookingID   *uint     `gorm:"index;column:booking_id" json:"booking_id,omitempty"`
	Type        string    `gorm:"column:type;size:20" json:"type"`
	Amount      int64     `gorm:"column:amount" json:"amount"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
}

const (
	ContractStatic  = "static"
	ContractDynamic = "dynamic"
)

// Contract grants an agency special pricing at one hotel between two dates
// (both inclusive).
type Contract struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AgencyID           uint      `gorm:"index:idx_contract_agency_hotel;column:agency_id" json:"agency_id"`
	HotelID            uint      `gorm:"index:idx_contract_agency_hotel;column:hotel_id" json:"hotel_id"`
	StartDate          time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate            time.Time `gorm:"column:end_date;type:date" json:"end_date"`
	Type               string    `gorm:"column:contract_type;size:10" json:"contract_type"`
	DiscountPercentage int       `gorm:"column:discount_percentage;default:0" json:"discount_percentage"`
	Priority           int       `gorm:"column:priority;default:0" json:"priority"`
}

func (c Contract) Covers(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(c.StartDate)) && !d.After(dateOnly(c.EndDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StaticRate is the fixed nightly price a static contract sets for a room type.
type StaticRate struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	ContractID      uint  `gorm:"column:contract_id;uniqueIndex:idx_static_contract_room" json:"contract_id"`
	RoomTypeID      uint  `gorm:"column:room_type_id;uniqueIndex:idx_static_contract_room" json:"room_type_id"`
	BasePrice       int64 `gorm:"column:base_price" json:"base_price"`
	ExtraAdultPrice int64 `gorm:"column:extra_adult_price" json:"extra_adult_price"`
	ChildPrice      int64 `gorm:"column:child_price" json:"child_price"`
}

func (r StaticRate) Triple() PriceTriple {
	return PriceTriple{Base: r.BasePrice, ExtraAdult: r.ExtraAdultPrice, Child: r.ChildPrice}
}
