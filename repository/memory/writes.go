package memory

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

func (v *view) LockDailyAvailability(_ context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error) {
	var out []models.DailyAvailability
	err := v.lock(func(d *dataset) error {
		out = availabilityRows(d, roomTypeIDs, from, to)
		return nil
	})
	return out, err
}

func (v *view) SaveDailyAvailability(_ context.Context, rows []models.DailyAvailability) error {
	return v.write(func(d *dataset) error {
		for _, row := range rows {
			if _, ok := d.availability[row.ID]; !ok {
				return notFound("save availability")
			}
			if row.RemainingQuantity < 0 {
				return fmt.Errorf("save availability: remaining_quantity %d below zero for room type %d", row.RemainingQuantity, row.RoomTypeID)
			}
		}
		for _, row := range rows {
			d.availability[row.ID] = row
		}
		return nil
	})
}

func (v *view) LockAgency(ctx context.Context, id uint) (*models.Agency, error) {
	if !v.inTx {
		return nil, ErrNoTransaction
	}
	return v.GetAgency(ctx, id)
}

func (v *view) SaveAgency(_ context.Context, agency *models.Agency) error {
	return v.write(func(d *dataset) error {
		cur, ok := d.agencies[agency.ID]
		if !ok {
			return notFound("save agency")
		}
		cur.CurrentBalance = agency.CurrentBalance
		cur.UpdatedAt = time.Now().UTC()
		d.agencies[agency.ID] = cur
		return nil
	})
}

func (v *view) CreateAgencyTransaction(_ context.Context, entry *models.AgencyTransaction) error {
	return v.write(func(d *dataset) error {
		entry.ID = v.s.nextID()
		entry.CreatedAt = time.Now().UTC()
		d.agencyTxs[entry.ID] = *entry
		return nil
	})
}

// AgencyTransactions lists the debt ledger of an agency, oldest first.
func (s *Store) AgencyTransactions(agencyID uint) []models.AgencyTransaction {
	var out []models.AgencyTransaction
	_ = s.read(func(d *dataset) error {
		out = values(d.agencyTxs, func(t models.AgencyTransaction) bool { return t.AgencyID == agencyID })
		return nil
	})
	return out
}

func (v *view) CreateBooking(_ context.Context, booking *models.Booking) error {
	return v.write(func(d *dataset) error {
		for _, b := range d.bookings {
			if booking.BookingCode != "" && b.BookingCode == booking.BookingCode {
				return fmt.Errorf("create booking: %w", repository.ErrDuplicate)
			}
		}
		now := time.Now().UTC()
		booking.ID = v.s.nextID()
		booking.CreatedAt = now
		booking.UpdatedAt = now
		for i := range booking.Rooms {
			booking.Rooms[i].ID = v.s.nextID()
			booking.Rooms[i].BookingID = booking.ID
		}
		for i := range booking.Guests {
			booking.Guests[i].ID = v.s.nextID()
			booking.Guests[i].BookingID = booking.ID
			booking.Guests[i].CreatedAt = now
		}
		d.bookings[booking.ID] = copyBooking(*booking)
		return nil
	})
}

func (v *view) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	var out *models.Booking
	err := v.read(func(d *dataset) error {
		b, ok := d.bookings[id]
		if !ok {
			return notFound("get booking")
		}
		b = copyBooking(b)
		out = &b
		return nil
	})
	return out, err
}

func (v *view) LockBooking(ctx context.Context, id uint) (*models.Booking, error) {
	if !v.inTx {
		return nil, ErrNoTransaction
	}
	return v.GetBooking(ctx, id)
}

func (v *view) SaveBooking(_ context.Context, booking *models.Booking) error {
	return v.write(func(d *dataset) error {
		cur, ok := d.bookings[booking.ID]
		if !ok {
			return notFound("save booking")
		}
		cur.Status = booking.Status
		cur.PaidAmount = booking.PaidAmount
		cur.CancellationFee = booking.CancellationFee
		cur.RefundAmount = booking.RefundAmount
		cur.NotificationSent = booking.NotificationSent
		cur.CheckedOutAt = booking.CheckedOutAt
		cur.UpdatedAt = time.Now().UTC()
		d.bookings[booking.ID] = cur
		return nil
	})
}
