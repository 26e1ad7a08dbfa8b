package memory

import (
	"sort"
	"time"

	"hotel-reservation/models"
)

type dataset struct {
	cities       map[uint]models.City
	hotels       map[uint]models.Hotel
	roomTypes    map[uint]models.RoomType
	boardTypes   map[uint]models.BoardType
	agencies     map[uint]models.Agency
	agencyTxs    map[uint]models.AgencyTransaction
	contracts    map[uint]models.Contract
	staticRates  map[uint]models.StaticRate
	prices       map[uint]models.DailyPrice
	availability map[uint]models.DailyAvailability
	bookings     map[uint]models.Booking
	payments     map[uint]models.PaymentConfirmation
	wallets      map[uint]models.Wallet
	walletTxs    map[uint]models.WalletTransaction
	policies     map[uint]models.CancellationPolicy
	periods      map[uint]models.SpecialPeriod
}

func newDataset() *dataset {
	return &dataset{
		cities:       map[uint]models.City{},
		hotels:       map[uint]models.Hotel{},
		roomTypes:    map[uint]models.RoomType{},
		boardTypes:   map[uint]models.BoardType{},
		agencies:     map[uint]models.Agency{},
		agencyTxs:    map[uint]models.AgencyTransaction{},
		contracts:    map[uint]models.Contract{},
		staticRates:  map[uint]models.StaticRate{},
		prices:       map[uint]models.DailyPrice{},
		availability: map[uint]models.DailyAvailability{},
		bookings:     map[uint]models.Booking{},
		payments:     map[uint]models.PaymentConfirmation{},
		wallets:      map[uint]models.Wallet{},
		walletTxs:    map[uint]models.WalletTransaction{},
		policies:     map[uint]models.CancellationPolicy{},
		periods:      map[uint]models.SpecialPeriod{},
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		cities:       cloneMap(d.cities, nil),
		hotels:       cloneMap(d.hotels, copyHotel),
		roomTypes:    cloneMap(d.roomTypes, nil),
		boardTypes:   cloneMap(d.boardTypes, nil),
		agencies:     cloneMap(d.agencies, copyAgency),
		agencyTxs:    cloneMap(d.agencyTxs, nil),
		contracts:    cloneMap(d.contracts, nil),
		staticRates:  cloneMap(d.staticRates, nil),
		prices:       cloneMap(d.prices, nil),
		availability: cloneMap(d.availability, nil),
		bookings:     cloneMap(d.bookings, copyBooking),
		payments:     cloneMap(d.payments, nil),
		wallets:      cloneMap(d.wallets, nil),
		walletTxs:    cloneMap(d.walletTxs, nil),
		policies:     cloneMap(d.policies, copyPolicy),
		periods:      cloneMap(d.periods, nil),
	}
}

func cloneMap[V any](m map[uint]V, deep func(V) V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		if deep != nil {
			v = deep(v)
		}
		out[k] = v
	}
	return out
}

// values returns the entries accepted by keep, ordered by id.
func values[V any](m map[uint]V, keep func(V) bool) []V {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func copyHotel(h models.Hotel) models.Hotel {
	h.Amenities = append(h.Amenities[:0:0], h.Amenities...)
	return h
}

func copyAgency(a models.Agency) models.Agency {
	a.CreditBlacklist = append(a.CreditBlacklist[:0:0], a.CreditBlacklist...)
	return a
}

func copyBooking(b models.Booking) models.Booking {
	b.Rooms = append([]models.BookingRoom(nil), b.Rooms...)
	b.Guests = append([]models.Guest(nil), b.Guests...)
	return b
}

func copyPolicy(p models.CancellationPolicy) models.CancellationPolicy {
	p.Rules = append([]models.CancellationRule(nil), p.Rules...)
	return p
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// inRange reports whether day lies in [from, to).
func inRange(day, from, to time.Time) bool {
	return !day.Before(from) && day.Before(to)
}

func containsID(ids []uint, id uint) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
