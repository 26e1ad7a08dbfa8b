package services

import (
	"context"
	"errors"
	"testing"

	"hotel-reservation/models"
)

func withContracts(t *testing.T, f *fixture) {
	t.Helper()
	f.insert(t,
		&models.Contract{ID: 1, AgencyID: agencyID, HotelID: hotelID, StartDate: day(0), EndDate: day(9),
			Type: models.ContractStatic, Priority: 5},
		&models.Contract{ID: 2, AgencyID: agencyID, HotelID: hotelID, StartDate: day(0), EndDate: day(9),
			Type: models.ContractDynamic, DiscountPercentage: 10, Priority: 1},
		&models.StaticRate{ContractID: 1, RoomTypeID: doubleRoom, BasePrice: 700_000, ExtraAdultPrice: 150_000, ChildPrice: 50_000},
	)
}

func resolve(t *testing.T, f *fixture, roomTypeID, boardTypeID uint, n int, customer models.Customer) (models.PriceTriple, error) {
	t.Helper()
	rt, err := f.store.GetRoomType(context.Background(), roomTypeID)
	if err != nil {
		t.Fatalf("room type %d: %v", roomTypeID, err)
	}
	return f.search.Rates().ResolvePrice(context.Background(), rt, boardTypeID, day(n), customer)
}

func TestResolvePricePublicCustomer(t *testing.T) {
	f := newFixture(t)
	withContracts(t, f)

	got, err := resolve(t, f, doubleRoom, breakfast, 0, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.PriceTriple{Base: 1_000_000, ExtraAdult: 200_000, Child: 100_000}
	if got != want {
		t.Fatalf("expected public price %+v, got %+v", want, got)
	}
}

func TestResolvePriceStaticContractOutranksDynamic(t *testing.T) {
	f := newFixture(t)
	withContracts(t, f)

	got, err := resolve(t, f, doubleRoom, breakfast, 2, agent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.PriceTriple{Base: 700_000, ExtraAdult: 150_000, Child: 50_000}
	if got != want {
		t.Fatalf("expected static rate %+v, got %+v", want, got)
	}
}

func TestResolvePriceStaticWithoutRateFallsBackToDynamic(t *testing.T) {
	f := newFixture(t)
	withContracts(t, f)

	got, err := resolve(t, f, suiteRoom, breakfast, 0, agent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Base != 1_800_000 {
		t.Fatalf("expected 10%% off the public base, got %d", got.Base)
	}
	if got.ExtraAdult != 300_000 || got.Child != 150_000 {
		t.Fatalf("surcharges must stay public, got %+v", got)
	}
}

func TestResolvePriceAgencyDefaultDiscount(t *testing.T) {
	f := newFixture(t)
	f.insert(t, &models.Agency{ID: 8, Name: "Default only", DefaultDiscountPercentage: 15})
	id := uint(8)

	got, err := resolve(t, f, doubleRoom, breakfast, 0, models.Customer{UserID: 5, AgencyID: &id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Base != 850_000 {
		t.Fatalf("expected agency default discount, got %d", got.Base)
	}
}

func TestResolvePriceContractOutsideWindowIgnored(t *testing.T) {
	f := newFixture(t)
	f.insert(t, &models.Contract{ID: 1, AgencyID: agencyID, HotelID: hotelID, StartDate: day(5), EndDate: day(9),
		Type: models.ContractDynamic, DiscountPercentage: 50, Priority: 1})

	got, err := resolve(t, f, doubleRoom, breakfast, 4, agent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Base != 1_000_000 {
		t.Fatalf("expected public price before the contract starts, got %d", got.Base)
	}
	got, err = resolve(t, f, doubleRoom, breakfast, 5, agent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Base != 500_000 {
		t.Fatalf("expected the discount on the first contract day, got %d", got.Base)
	}
}

func TestResolvePriceEqualPriorityBrokenByID(t *testing.T) {
	f := newFixture(t)
	f.insert(t,
		&models.Contract{ID: 4, AgencyID: agencyID, HotelID: hotelID, StartDate: day(0), EndDate: day(9),
			Type: models.ContractDynamic, DiscountPercentage: 30, Priority: 2},
		&models.Contract{ID: 3, AgencyID: agencyID, HotelID: hotelID, StartDate: day(0), EndDate: day(9),
			Type: models.ContractDynamic, DiscountPercentage: 20, Priority: 2},
	)

	got, err := resolve(t, f, doubleRoom, breakfast, 0, agent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Base != 800_000 {
		t.Fatalf("expected the lower contract id to win, got %d", got.Base)
	}
}

func TestResolvePriceMissingPublicPriceIsNotPriceable(t *testing.T) {
	f := newFixture(t)
	withContracts(t, f)

	_, err := resolve(t, f, doubleRoom, halfBoard, 1, agent())
	if !errors.Is(err, ErrNotPriceable) {
		t.Fatalf("expected ErrNotPriceable, got %v", err)
	}
	var npe *NotPriceableError
	if !errors.As(err, &npe) || !npe.Date.Equal(day(1)) {
		t.Fatalf("expected the missing night in the error, got %v", err)
	}
}

func TestApplyDiscountRounding(t *testing.T) {
	cases := []struct {
		amount int64
		pct    int
		want   int64
	}{
		{1_000_000, 10, 900_000},
		{999, 10, 899},
		{5, 50, 3},
		{100, 0, 100},
		{100, 100, 0},
	}
	for _, tc := range cases {
		if got := applyDiscount(tc.amount, tc.pct); got != tc.want {
			t.Fatalf("applyDiscount(%d, %d) = %d, want %d", tc.amount, tc.pct, got, tc.want)
		}
	}
}
