package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
}

func (v *view) GetHotel(_ context.Context, id uint) (*models.Hotel, error) {
	var out *models.Hotel
	err := v.read(func(d *dataset) error {
		h, ok := d.hotels[id]
		if !ok {
			return notFound("get hotel")
		}
		h = copyHotel(h)
		out = &h
		return nil
	})
	return out, err
}

func (v *view) ListHotelsByCity(_ context.Context, cityID uint) ([]models.Hotel, error) {
	var out []models.Hotel
	err := v.read(func(d *dataset) error {
		for _, h := range values(d.hotels, func(h models.Hotel) bool { return h.CityID == cityID }) {
			out = append(out, copyHotel(h))
		}
		return nil
	})
	return out, err
}

func (v *view) GetRoomType(_ context.Context, id uint) (*models.RoomType, error) {
	var out *models.RoomType
	err := v.read(func(d *dataset) error {
		rt, ok := d.roomTypes[id]
		if !ok {
			return notFound("get room type")
		}
		out = &rt
		return nil
	})
	return out, err
}

func (v *view) ListRoomTypesByHotels(_ context.Context, hotelIDs []uint) ([]models.RoomType, error) {
	var out []models.RoomType
	err := v.read(func(d *dataset) error {
		out = values(d.roomTypes, func(rt models.RoomType) bool { return containsID(hotelIDs, rt.HotelID) })
		return nil
	})
	return out, err
}

func (v *view) GetBoardType(_ context.Context, id uint) (*models.BoardType, error) {
	var out *models.BoardType
	err := v.read(func(d *dataset) error {
		bt, ok := d.boardTypes[id]
		if !ok {
			return notFound("get board type")
		}
		out = &bt
		return nil
	})
	return out, err
}

func (v *view) GetAgency(_ context.Context, id uint) (*models.Agency, error) {
	var out *models.Agency
	err := v.read(func(d *dataset) error {
		a, ok := d.agencies[id]
		if !ok {
			return notFound("get agency")
		}
		a = copyAgency(a)
		out = &a
		return nil
	})
	return out, err
}

func (v *view) ListContracts(_ context.Context, agencyID, hotelID uint, from, to time.Time) ([]models.Contract, error) {
	var out []models.Contract
	err := v.read(func(d *dataset) error {
		out = values(d.contracts, func(c models.Contract) bool {
			return c.AgencyID == agencyID && c.HotelID == hotelID &&
				!c.StartDate.After(to) && !c.EndDate.Before(from)
		})
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
		return nil
	})
	return out, err
}

func (v *view) ListStaticRates(_ context.Context, contractIDs []uint) ([]models.StaticRate, error) {
	var out []models.StaticRate
	err := v.read(func(d *dataset) error {
		out = values(d.staticRates, func(r models.StaticRate) bool { return containsID(contractIDs, r.ContractID) })
		return nil
	})
	return out, err
}

func (v *view) GetDailyPrice(_ context.Context, roomTypeID, boardTypeID uint, day time.Time) (*models.DailyPrice, error) {
	var out *models.DailyPrice
	err := v.read(func(d *dataset) error {
		for _, p := range d.prices {
			if p.RoomTypeID == roomTypeID && p.BoardTypeID == boardTypeID && sameDay(p.Date, day) {
				p := p
				out = &p
				return nil
			}
		}
		return notFound("get daily price")
	})
	return out, err
}

func (v *view) ListDailyPrices(_ context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyPrice, error) {
	var out []models.DailyPrice
	err := v.read(func(d *dataset) error {
		out = values(d.prices, func(p models.DailyPrice) bool {
			return containsID(roomTypeIDs, p.RoomTypeID) && inRange(p.Date, from, to)
		})
		return nil
	})
	return out, err
}

func (v *view) ListDailyAvailability(_ context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error) {
	var out []models.DailyAvailability
	err := v.read(func(d *dataset) error {
		out = availabilityRows(d, roomTypeIDs, from, to)
		return nil
	})
	return out, err
}

func availabilityRows(d *dataset, roomTypeIDs []uint, from, to time.Time) []models.DailyAvailability {
	rows := values(d.availability, func(a models.DailyAvailability) bool {
		return containsID(roomTypeIDs, a.RoomTypeID) && inRange(a.Date, from, to)
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RoomTypeID != rows[j].RoomTypeID {
			return rows[i].RoomTypeID < rows[j].RoomTypeID
		}
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

func (v *view) GetCancellationPolicy(_ context.Context, id uint) (*models.CancellationPolicy, error) {
	var out *models.CancellationPolicy
	err := v.read(func(d *dataset) error {
		p, ok := d.policies[id]
		if !ok {
			return notFound("get cancellation policy")
		}
		p = copyPolicy(p)
		out = &p
		return nil
	})
	return out, err
}

func (v *view) IsPeakDay(_ context.Context, day time.Time) (bool, error) {
	var peak bool
	err := v.read(func(d *dataset) error {
		for _, sp := range d.periods {
			if !day.Before(sp.StartDate) && !day.After(sp.EndDate) {
				peak = true
				return nil
			}
		}
		return nil
	})
	return peak, err
}
