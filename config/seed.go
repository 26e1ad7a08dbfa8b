package config

import (
	"time"

	"gorm.io/datatypes"

	"hotel-reservation/models"
)

const demoHorizonDays = 90

func ptr(v uint) *uint { return &v }

// DemoCatalog is a small city with two hotels, public prices and stock for
// the next days, an agency with contracts and the cancellation policies.
// IDs are fixed so the records can be written in order to either store.
func DemoCatalog(today time.Time) []any {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	recs := []any{
		&models.City{ID: 1, Name: "Tehran", Slug: "tehran"},
		&models.CancellationPolicy{ID: 1, Name: "Standard", Rules: []models.CancellationRule{
			{ID: 1, PolicyID: 1, DaysBeforeMin: 0, DaysBeforeMax: 1, PenaltyType: models.PenaltyPercentFirstNight, PenaltyValue: 100},
			{ID: 2, PolicyID: 1, DaysBeforeMin: 2, DaysBeforeMax: 7, PenaltyType: models.PenaltyPercentTotal, PenaltyValue: 20},
		}},
		&models.CancellationPolicy{ID: 2, Name: "Peak season", Rules: []models.CancellationRule{
			{ID: 3, PolicyID: 2, DaysBeforeMin: 0, DaysBeforeMax: 3, PenaltyType: models.PenaltyPercentTotal, PenaltyValue: 100},
			{ID: 4, PolicyID: 2, DaysBeforeMin: 4, DaysBeforeMax: 30, PenaltyType: models.PenaltyFixedNights, PenaltyValue: 1},
		}},
		&models.SpecialPeriod{ID: 1, Name: "Nowruz", StartDate: time.Date(y+1, 3, 15, 0, 0, 0, 0, time.UTC), EndDate: time.Date(y+1, 4, 2, 0, 0, 0, 0, time.UTC)},
		&models.Hotel{
			ID: 1, CityID: 1, Name: "Azadi Grand", Stars: 5, Address: "Chamran Hwy",
			Amenities:                  datatypes.JSONSlice[string]{"pool", "spa", "wifi", "parking"},
			BookingWorkflow:            models.WorkflowInstant,
			CancellationPolicyNormalID: ptr(1),
			CancellationPolicyPeakID:   ptr(2),
		},
		&models.Hotel{
			ID: 2, CityID: 1, Name: "Ferdowsi Inn", Stars: 3, Address: "Ferdowsi Sq",
			Amenities:                  datatypes.JSONSlice[string]{"wifi"},
			BookingWorkflow:            models.WorkflowManualReview,
			CancellationPolicyNormalID: ptr(1),
		},
		&models.BoardType{ID: 1, Name: "Room only", Code: "RO"},
		&models.BoardType{ID: 2, Name: "Bed and breakfast", Code: "BB"},
		&models.RoomType{ID: 1, HotelID: 1, Name: "Double", BaseCapacity: 2, ExtraCapacity: 1, ChildCapacity: 1},
		&models.RoomType{ID: 2, HotelID: 1, Name: "Suite", BaseCapacity: 2, ExtraCapacity: 2, ChildCapacity: 2},
		&models.RoomType{ID: 3, HotelID: 2, Name: "Twin", BaseCapacity: 2, ExtraCapacity: 0, ChildCapacity: 1},
		&models.Agency{ID: 1, Name: "Persia Travel", CreditLimit: 50_000_000, DefaultDiscountPercentage: 5},
		&models.Contract{ID: 1, AgencyID: 1, HotelID: 1, StartDate: start, EndDate: start.AddDate(0, 0, demoHorizonDays), Type: models.ContractDynamic, DiscountPercentage: 12, Priority: 1},
		&models.Contract{ID: 2, AgencyID: 1, HotelID: 1, StartDate: start, EndDate: start.AddDate(0, 0, demoHorizonDays), Type: models.ContractStatic, Priority: 2},
		&models.StaticRate{ID: 1, ContractID: 2, RoomTypeID: 2, BasePrice: 4_000_000, ExtraAdultPrice: 900_000, ChildPrice: 500_000},
	}

	rooms := []struct {
		roomType uint
		boards   map[uint]int64
		stock    int
	}{
		{1, map[uint]int64{1: 2_000_000, 2: 2_300_000}, 10},
		{2, map[uint]int64{1: 4_500_000, 2: 4_900_000}, 3},
		{3, map[uint]int64{2: 1_200_000}, 6},
	}
	for i := 0; i < demoHorizonDays; i++ {
		day := start.AddDate(0, 0, i)
		for _, r := range rooms {
			for _, board := range []uint{1, 2} {
				base, ok := r.boards[board]
				if !ok {
					continue
				}
				recs = append(recs, &models.DailyPrice{
					RoomTypeID: r.roomType, BoardTypeID: board, Date: day,
					BasePrice: base, ExtraAdultPrice: base / 4, ChildPrice: base / 8,
				})
			}
			recs = append(recs, &models.DailyAvailability{RoomTypeID: r.roomType, Date: day, RemainingQuantity: r.stock})
		}
	}
	return recs
}
