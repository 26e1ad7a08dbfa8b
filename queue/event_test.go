package queue

import (
	"encoding/json"
	"testing"
	"time"

	"hotel-reservation/models"
)

func TestNewBookingConfirmedEvent(t *testing.T) {
	user, agency := uint(4), uint(9)
	b := models.Booking{
		ID:          12,
		BookingCode: "BK1X",
		UserID:      &user,
		AgencyID:    &agency,
		HotelID:     3,
		CheckIn:     time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2030, 5, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:  9_000_000,
		PaidAmount:  9_000_000,
		Rooms:       []models.BookingRoom{{Quantity: 2}, {Quantity: 1}},
		Guests: []models.Guest{
			{FirstName: "Reza", LastName: "Karimi", PhoneNumber: "09350000000"},
			{FirstName: "Mina", LastName: "Karimi"},
		},
	}
	at := time.Date(2030, 4, 1, 12, 30, 0, 0, time.FixedZone("IRST", 12600))

	ev := NewBookingConfirmedEvent(b, at)
	if ev.Rooms != 3 || ev.UserID != 4 || ev.AgencyID != 9 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.CheckIn != "2030-05-01" || ev.CheckOut != "2030-05-04" {
		t.Fatalf("unexpected stay %s..%s", ev.CheckIn, ev.CheckOut)
	}
	if ev.GuestPhone != "09350000000" || ev.GuestName == "" {
		t.Fatalf("principal guest missing: %+v", ev)
	}
	if ev.ConfirmedAt != "2030-04-01T09:00:00Z" {
		t.Fatalf("confirmed_at = %s", ev.ConfirmedAt)
	}

	raw, err := json.Marshal(NewBookingConfirmedEvent(models.Booking{ID: 1}, at))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)
	for _, key := range []string{"user_id", "agency_id", "guest_name"} {
		if _, ok := fields[key]; ok {
			t.Fatalf("%s must be omitted when empty: %s", key, raw)
		}
	}
}
