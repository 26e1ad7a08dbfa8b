// Package queue publishes booking events to RabbitMQ.
package queue

import (
	"time"

	"hotel-reservation/models"
)

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent carries what a voucher or SMS sender needs without
// going back to the database.
type BookingConfirmedEvent struct {
	BookingID   uint   `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	HotelID     uint   `json:"hotel_id"`
	UserID      uint   `json:"user_id,omitempty"`
	AgencyID    uint   `json:"agency_id,omitempty"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Rooms       int    `json:"rooms"`
	TotalPrice  int64  `json:"total_price"`
	PaidAmount  int64  `json:"paid_amount"`
	GuestName   string `json:"guest_name,omitempty"`
	GuestPhone  string `json:"guest_phone,omitempty"`
	GuestEmail  string `json:"guest_email,omitempty"`
	ConfirmedAt string `json:"confirmed_at"`
}

func NewBookingConfirmedEvent(b models.Booking, at time.Time) BookingConfirmedEvent {
	ev := BookingConfirmedEvent{
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		HotelID:     b.HotelID,
		CheckIn:     b.CheckIn.Format("2006-01-02"),
		CheckOut:    b.CheckOut.Format("2006-01-02"),
		TotalPrice:  b.TotalPrice,
		PaidAmount:  b.PaidAmount,
		ConfirmedAt: at.UTC().Format(time.RFC3339),
	}
	if b.UserID != nil {
		ev.UserID = *b.UserID
	}
	if b.AgencyID != nil {
		ev.AgencyID = *b.AgencyID
	}
	for _, r := range b.Rooms {
		ev.Rooms += r.Quantity
	}
	if len(b.Guests) > 0 {
		ev.GuestName = b.Guests[0].FullName()
		ev.GuestPhone = b.Guests[0].PhoneNumber
		ev.GuestEmail = b.Guests[0].Email
	}
	return ev
}
