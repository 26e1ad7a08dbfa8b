package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel-reservation/repository"
)

func TestSearchHotelsSkipsBoardWithMissingNight(t *testing.T) {
	f := newFixture(t)

	got, err := f.search.SearchHotels(context.Background(), SearchQuery{CityID: cityID, Stay: stay(0, 3), Adults: 2}, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(got))
	}

	// Twin 3 x 800k is cheapest, then the Abbasi Double with breakfast.
	if got[0].HotelID != otherHotel || got[0].MinPrice != 2_400_000 {
		t.Fatalf("unexpected first hotel %+v", got[0])
	}
	abbasi := got[1]
	if abbasi.HotelID != hotelID {
		t.Fatalf("unexpected second hotel %+v", abbasi)
	}
	// half board is cheaper but has no price on day 1
	if abbasi.MinPrice != 3_000_000 {
		t.Fatalf("expected min price from the breakfast board only, got %d", abbasi.MinPrice)
	}
	for _, offer := range abbasi.Offers {
		if offer.BoardTypeID == halfBoard {
			t.Fatalf("half board must not be ranked: %+v", offer)
		}
	}
}

func TestSearchHotelsUsesCompleteCheaperBoard(t *testing.T) {
	f := newFixture(t)

	// days 2..4 have both boards priced
	got, err := f.search.SearchHotels(context.Background(), SearchQuery{CityID: cityID, Stay: stay(2, 3), Adults: 2, MinStars: 4}, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].HotelID != hotelID {
		t.Fatalf("expected only the five star hotel, got %+v", got)
	}
	if got[0].MinPrice != 1_800_000 || got[0].Offers[0].BoardTypeID != halfBoard {
		t.Fatalf("expected half board at 1.8M, got %+v", got[0])
	}
}

func TestSearchHotelsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := SearchQuery{CityID: cityID, Stay: stay(0, 2), Adults: 2}

	q := base
	q.Amenities = []string{"pool"}
	got, err := f.search.SearchHotels(ctx, q, guest())
	if err != nil || len(got) != 1 || got[0].HotelID != hotelID {
		t.Fatalf("amenity filter: got %+v err=%v", got, err)
	}

	q = base
	q.MaxPrice = 1_700_000
	got, err = f.search.SearchHotels(ctx, q, guest())
	if err != nil || len(got) != 1 || got[0].HotelID != otherHotel {
		t.Fatalf("max price filter: got %+v err=%v", got, err)
	}

	// the twin takes no children
	q = base
	q.Children = 1
	got, err = f.search.SearchHotels(ctx, q, guest())
	if err != nil || len(got) != 1 || got[0].HotelID != hotelID {
		t.Fatalf("occupancy filter: got %+v err=%v", got, err)
	}
}

func TestSearchHotelsSoldOutNightExcludesRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	err := f.store.WithinTransaction(ctx, func(tx repository.Store) error {
		rows, err := tx.LockDailyAvailability(ctx, []uint{twinRoom}, day(1), day(2))
		if err != nil {
			return err
		}
		rows[0].RemainingQuantity = 0
		return tx.SaveDailyAvailability(ctx, rows)
	})
	if err != nil {
		t.Fatalf("sell out: %v", err)
	}

	got, err := f.search.SearchHotels(ctx, SearchQuery{CityID: cityID, Stay: stay(0, 3), Adults: 1}, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].HotelID != hotelID {
		t.Fatalf("expected the sold out hotel to disappear, got %+v", got)
	}
}

func TestSearchHotelsValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.search.SearchHotels(context.Background(), SearchQuery{Stay: stay(0, 1), Adults: 0}, guest())
	if !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("expected validation error, got %v", err)
	}
	ve := AsValidationError(err)
	if ve == nil || len(ve.Fields()["city_id"]) == 0 || len(ve.Fields()["adults"]) == 0 {
		t.Fatalf("expected city_id and adults messages, got %v", err)
	}
}

type mapCache struct {
	data map[string][]byte
	sets int
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	bs, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(bs, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	bs, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = bs
	return nil
}

func TestSearchHotelsCachesPerAgency(t *testing.T) {
	f := newFixture(t)
	cache := &mapCache{data: map[string][]byte{}}
	svc := NewSearchService(f.store, cache, time.Minute, f.log)
	q := SearchQuery{CityID: cityID, Stay: stay(0, 2), Adults: 2}

	first, err := svc.SearchHotels(context.Background(), q, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SearchHotels(context.Background(), q, guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
	if len(first) != len(second) || first[0].MinPrice != second[0].MinPrice {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}

	if _, err := svc.SearchHotels(context.Background(), q, agent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 2 {
		t.Fatalf("agency search must not share the public cache entry")
	}
}

func TestQuoteCartTotals(t *testing.T) {
	f := newFixture(t)
	items := []CartItem{
		{RoomTypeID: doubleRoom, BoardTypeID: breakfast, Quantity: 2, ExtraAdults: 1, Children: 1},
		{RoomTypeID: suiteRoom, BoardTypeID: breakfast, Quantity: 1},
	}

	quote, err := f.search.QuoteCart(context.Background(), items, stay(0, 2), guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (1M + 200k + 100k) * 2 rooms * 2 nights, plus 2M * 2 nights
	if quote.Lines[0].Total != 5_200_000 || quote.Lines[1].Total != 4_000_000 {
		t.Fatalf("unexpected line totals %+v", quote.Lines)
	}
	if quote.Total != 9_200_000 {
		t.Fatalf("expected total 9.2M, got %d", quote.Total)
	}
}

func TestQuoteCartRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.search.QuoteCart(ctx, []CartItem{{RoomTypeID: doubleRoom, BoardTypeID: halfBoard, Quantity: 1}}, stay(0, 3), guest())
	if !errors.Is(err, ErrNotPriceable) {
		t.Fatalf("expected ErrNotPriceable, got %v", err)
	}

	_, err = f.search.QuoteCart(ctx, []CartItem{
		{RoomTypeID: doubleRoom, BoardTypeID: breakfast, Quantity: 1},
		{RoomTypeID: twinRoom, BoardTypeID: breakfast, Quantity: 1},
	}, stay(0, 1), guest())
	if !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("expected mixed hotels to be rejected, got %v", err)
	}

	_, err = f.search.QuoteCart(ctx, []CartItem{{RoomTypeID: 999, BoardTypeID: breakfast, Quantity: 1}}, stay(0, 1), guest())
	if !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("expected unknown room type to be rejected, got %v", err)
	}

	_, err = f.search.QuoteCart(ctx, nil, stay(0, 1), guest())
	if !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("expected empty cart to be rejected, got %v", err)
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2030-01-10", "2030-01-13", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Nights() != 3 || len(r.Days()) != 3 || !r.LastNight().Equal(day(2)) {
		t.Fatalf("unexpected range %s", r)
	}
	if _, err := ParseDateRange("2030-01-10", "2030-01-10", 30); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected empty stay to be rejected, got %v", err)
	}
	if _, err := ParseDateRange("2030-01-10", "2030-03-10", 30); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected long stay to be rejected, got %v", err)
	}
	if _, err := ParseDateRange("soon", "2030-03-10", 30); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected bad date to be rejected, got %v", err)
	}
}
