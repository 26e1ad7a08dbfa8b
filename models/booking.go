package models

import (
	"time"
)

// Booking statuses.
const (
	StatusPending               = "pending"
	StatusAwaitingConfirmation  = "awaiting_confirmation"
	StatusConfirmed             = "confirmed"
	StatusCancellationRequested = "cancellation_requested"
	StatusModificationRequested = "modification_requested"
	StatusCancelled             = "cancelled"
	StatusCheckedOut            = "checked_out"
	StatusNoCapacity            = "no_capacity"
	StatusExpired               = "expired"
)

// IsTerminalStatus reports whether a booking in this status can no longer
// change through payments or requests.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCancelled, StatusCheckedOut, StatusNoCapacity, StatusExpired:
		return true
	}
	return false
}

// Payment methods accepted for a booking.
const (
	PaymentOnline       = "online"
	PaymentOffline      = "offline"
	PaymentWallet       = "wallet"
	PaymentAgencyCredit = "agency_credit"
)

func IsPaymentMethod(m string) bool {
	switch m {
	case PaymentOnline, PaymentOffline, PaymentWallet, PaymentAgencyCredit:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BookingCode string `gorm:"column:booking_code;size:32;uniqueIndex" json:"booking_code"`
	UserID      *uint  `gorm:"index;column:user_id" json:"user_id,omitempty"`
	AgencyID    *uint  `gorm:"index;column:agency_id" json:"agency_id,omitempty"`
	HotelID     uint   `gorm:"index;column:hotel_id" json:"hotel_id"`

	CheckIn  time.Time `gorm:"column:check_in;type:date" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;type:date" json:"check_out"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentMethod string `gorm:"column:payment_method;size:20" json:"payment_method"`

	TotalPrice       int64      `gorm:"column:total_price" json:"total_price"`
	PaidAmount       int64      `gorm:"column:paid_amount;default:0" json:"paid_amount"`
	CancellationFee  int64      `gorm:"column:cancellation_fee;default:0" json:"cancellation_fee"`
	RefundAmount     int64      `gorm:"column:refund_amount;default:0" json:"refund_amount"`
	NotificationSent bool       `gorm:"column:notification_sent;default:false" json:"notification_sent"`
	CheckedOutAt     *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	Rooms  []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`
	Guests []Guest       `gorm:"foreignKey:BookingID" json:"guests"`
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// OwnedBy reports whether the customer may act on this booking: the same
// user, or any member of the agency that booked it.
func (b Booking) OwnedBy(c Customer) bool {
	if b.UserID != nil && *b.UserID == c.UserID && c.UserID != 0 {
		return true
	}
	return b.AgencyID != nil && c.AgencyID != nil && *b.AgencyID == *c.AgencyID
}
