package services

import (
	"context"
	"fmt"
	"sort"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// AvailabilityLedger reads and moves the per-day inventory counters.
type AvailabilityLedger struct {
	catalog repository.Catalog
}

func NewAvailabilityLedger(catalog repository.Catalog) *AvailabilityLedger {
	return &AvailabilityLedger{catalog: catalog}
}

// IsAvailable reports whether at least one room of the type is left on every
// night of the stay. A night without an inventory row counts as sold out.
func (l *AvailabilityLedger) IsAvailable(ctx context.Context, roomTypeID uint, stay DateRange) (bool, error) {
	rows, err := l.catalog.ListDailyAvailability(ctx, []uint{roomTypeID}, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return false, fmt.Errorf("load availability: %w", err)
	}
	return availableNights(rows)[roomTypeID] == stay.Nights(), nil
}

// availableNights counts, per room type, the nights with stock left.
func availableNights(rows []models.DailyAvailability) map[uint]int {
	out := make(map[uint]int)
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%d/%s", row.RoomTypeID, dayKey(row.Date))
		if row.RemainingQuantity > 0 && !seen[key] {
			seen[key] = true
			out[row.RoomTypeID]++
		}
	}
	return out
}

// Demand is the number of rooms requested per room type.
type Demand map[uint]int

func (d Demand) roomTypeIDs() []uint {
	ids := make([]uint, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func demandOfCart(items []CartItem) Demand {
	d := make(Demand)
	for _, it := range items {
		d[it.RoomTypeID] += it.Quantity
	}
	return d
}

func demandOfRooms(rooms []models.BookingRoom) Demand {
	d := make(Demand)
	for _, r := range rooms {
		d[r.RoomTypeID] += r.Quantity
	}
	return d
}

// Reserve locks the inventory rows of every requested night, checks that
// each has enough stock and decrements them. It must run inside a
// transaction; the first shortfall aborts with an *InventoryError and nothing
// is written.
func (l *AvailabilityLedger) Reserve(ctx context.Context, tx repository.Store, demand Demand, stay DateRange) error {
	return l.move(ctx, tx, demand, stay, -1)
}

// Release gives rooms back to inventory, e.g. when a booking is cancelled.
func (l *AvailabilityLedger) Release(ctx context.Context, tx repository.Store, demand Demand, stay DateRange) error {
	return l.move(ctx, tx, demand, stay, +1)
}

func (l *AvailabilityLedger) move(ctx context.Context, tx repository.Store, demand Demand, stay DateRange, sign int) error {
	ids := demand.roomTypeIDs()
	rows, err := tx.LockDailyAvailability(ctx, ids, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return fmt.Errorf("lock availability: %w", err)
	}

	byKey := make(map[string]models.DailyAvailability, len(rows))
	for _, row := range rows {
		byKey[fmt.Sprintf("%d/%s", row.RoomTypeID, dayKey(row.Date))] = row
	}

	updated := make([]models.DailyAvailability, 0, len(ids)*stay.Nights())
	for _, id := range ids {
		qty := demand[id]
		for _, day := range stay.Days() {
			row, ok := byKey[fmt.Sprintf("%d/%s", id, dayKey(day))]
			if !ok {
				if sign > 0 {
					continue
				}
				return &InventoryError{RoomTypeID: id, Date: day, Remaining: 0, Requested: qty}
			}
			if sign < 0 && row.RemainingQuantity < qty {
				return &InventoryError{RoomTypeID: id, Date: day, Remaining: row.RemainingQuantity, Requested: qty}
			}
			row.RemainingQuantity += sign * qty
			updated = append(updated, row)
		}
	}

	if err := tx.SaveDailyAvailability(ctx, updated); err != nil {
		return fmt.Errorf("save availability: %w", err)
	}
	return nil
}

func stayOf(b *models.Booking) DateRange {
	return DateRange{CheckIn: Day(b.CheckIn), CheckOut: Day(b.CheckOut)}
}
