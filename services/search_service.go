package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// SearchCache stores search results for a short time. Implementations may
// drop entries at any moment.
type SearchCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type SearchQuery struct {
	CityID    uint
	Stay      DateRange
	Adults    int
	Children  int
	MinPrice  int64
	MaxPrice  int64
	MinStars  int
	Amenities []string
}

func (q SearchQuery) cacheKey(customer models.Customer) string {
	agency := uint(0)
	if customer.IsAgent() {
		agency = *customer.AgencyID
	}
	amenities := make([]string, 0, len(q.Amenities))
	for _, a := range q.Amenities {
		amenities = append(amenities, strings.ToLower(strings.TrimSpace(a)))
	}
	sort.Strings(amenities)
	return fmt.Sprintf("search:city=%d:stay=%s:a=%d:c=%d:min=%d:max=%d:stars=%d:am=%s:agency=%d",
		q.CityID, q.Stay, q.Adults, q.Children, q.MinPrice, q.MaxPrice, q.MinStars, strings.Join(amenities, ","), agency)
}

// RoomOffer is the cheapest fully priced board type of a room type.
type RoomOffer struct {
	RoomTypeID   uint   `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	BoardTypeID  uint   `json:"board_type_id"`
	TotalPrice   int64  `json:"total_price"`
	ExtraAdults  int    `json:"extra_adults"`
}

type HotelSummary struct {
	HotelID   uint        `json:"hotel_id"`
	Name      string      `json:"name"`
	Stars     int         `json:"stars"`
	Amenities []string    `json:"amenities"`
	MinPrice  int64       `json:"min_price"`
	Offers    []RoomOffer `json:"offers"`
}

// CartItem is one line of a booking cart.
type CartItem struct {
	RoomTypeID  uint `json:"room_type_id"`
	BoardTypeID uint `json:"board_type_id"`
	Quantity    int  `json:"quantity"`
	ExtraAdults int  `json:"extra_adults"`
	Children    int  `json:"children"`
}

type QuoteLine struct {
	CartItem
	Total int64 `json:"total_price"`
}

type Quote struct {
	HotelID uint        `json:"hotel_id"`
	Stay    DateRange   `json:"stay"`
	Lines   []QuoteLine `json:"lines"`
	Total   int64       `json:"total_price"`
}

// SearchService ranks hotels and prices carts. It takes no locks and may
// read slightly stale inventory; bookings re-check under lock.
type SearchService struct {
	catalog  repository.Catalog
	rates    *RateResolver
	ledger   *AvailabilityLedger
	cache    SearchCache
	cacheTTL time.Duration
	log      *logrus.Logger
}

func NewSearchService(catalog repository.Catalog, cache SearchCache, cacheTTL time.Duration, log *logrus.Logger) *SearchService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SearchService{
		catalog:  catalog,
		rates:    NewRateResolver(catalog, log),
		ledger:   NewAvailabilityLedger(catalog),
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *SearchService) Catalog() repository.Catalog { return s.catalog }

func (s *SearchService) Rates() *RateResolver { return s.rates }

func (s *SearchService) Ledger() *AvailabilityLedger { return s.ledger }

// SearchHotels returns the hotels of a city that can host the party for the
// whole stay, cheapest first. A hotel is listed only when at least one of
// its room types is available every night and has a board type priced
// every night.
func (s *SearchService) SearchHotels(ctx context.Context, q SearchQuery, customer models.Customer) ([]HotelSummary, error) {
	if err := validateSearch(q); err != nil {
		return nil, err
	}

	key := q.cacheKey(customer)
	if s.cache != nil {
		var cached []HotelSummary
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.WithError(err).Warn("search cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	hotels, err := s.catalog.ListHotelsByCity(ctx, q.CityID)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	candidates := make(map[uint]models.Hotel, len(hotels))
	hotelIDs := make([]uint, 0, len(hotels))
	for _, h := range hotels {
		if h.Stars < q.MinStars || !h.HasAmenities(q.Amenities) {
			continue
		}
		candidates[h.ID] = h
		hotelIDs = append(hotelIDs, h.ID)
	}

	roomTypes, err := s.catalog.ListRoomTypesByHotels(ctx, hotelIDs)
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	fitting := make([]models.RoomType, 0, len(roomTypes))
	rtIDs := make([]uint, 0, len(roomTypes))
	for _, rt := range roomTypes {
		if extraAdultsFor(rt, q.Adults) > rt.ExtraCapacity || q.Children > rt.ChildCapacity {
			continue
		}
		fitting = append(fitting, rt)
		rtIDs = append(rtIDs, rt.ID)
	}

	rows, err := s.catalog.ListDailyAvailability(ctx, rtIDs, q.Stay.CheckIn, q.Stay.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	nightsLeft := availableNights(rows)
	nights := q.Stay.Nights()

	available := make([]models.RoomType, 0, len(fitting))
	availableIDs := make([]uint, 0, len(fitting))
	for _, rt := range fitting {
		if nightsLeft[rt.ID] == nights {
			available = append(available, rt)
			availableIDs = append(availableIDs, rt.ID)
		}
	}

	prices, err := s.catalog.ListDailyPrices(ctx, availableIDs, q.Stay.CheckIn, q.Stay.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	table := newPriceTable(prices)

	terms := make(map[uint]*PricingTerms)
	summaries := make(map[uint]*HotelSummary)
	for _, rt := range available {
		t, ok := terms[rt.HotelID]
		if !ok {
			t, err = s.rates.Terms(ctx, customer, rt.HotelID, q.Stay)
			if err != nil {
				return nil, err
			}
			terms[rt.HotelID] = t
		}

		extra := extraAdultsFor(rt, q.Adults)
		best, found := int64(0), false
		var bestBoard uint
		for _, boardID := range table.boards(rt.ID) {
			total, complete := table.stayTotal(t, rt.ID, boardID, q.Stay, 1, extra, q.Children)
			if !complete {
				continue
			}
			if !found || total < best || (total == best && boardID < bestBoard) {
				best, bestBoard, found = total, boardID, true
			}
		}
		if !found {
			continue
		}

		h := candidates[rt.HotelID]
		sum, ok := summaries[h.ID]
		if !ok {
			sum = &HotelSummary{HotelID: h.ID, Name: h.Name, Stars: h.Stars, Amenities: []string(h.Amenities), MinPrice: best}
			summaries[h.ID] = sum
		}
		if best < sum.MinPrice {
			sum.MinPrice = best
		}
		sum.Offers = append(sum.Offers, RoomOffer{
			RoomTypeID:   rt.ID,
			RoomTypeName: rt.Name,
			BoardTypeID:  bestBoard,
			TotalPrice:   best,
			ExtraAdults:  extra,
		})
	}

	out := make([]HotelSummary, 0, len(summaries))
	for _, sum := range summaries {
		if q.MinPrice > 0 && sum.MinPrice < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && sum.MinPrice > q.MaxPrice {
			continue
		}
		sort.Slice(sum.Offers, func(i, j int) bool {
			if sum.Offers[i].TotalPrice != sum.Offers[j].TotalPrice {
				return sum.Offers[i].TotalPrice < sum.Offers[j].TotalPrice
			}
			return sum.Offers[i].RoomTypeID < sum.Offers[j].RoomTypeID
		})
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MinPrice != out[j].MinPrice {
			return out[i].MinPrice < out[j].MinPrice
		}
		return out[i].HotelID < out[j].HotelID
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
			s.log.WithError(err).Warn("search cache write failed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"city_id": q.CityID,
		"stay":    q.Stay.String(),
		"results": len(out),
	}).Debug("hotel search")
	return out, nil
}

func validateSearch(q SearchQuery) error {
	ve := newValidationError(ErrInvalidCart)
	if q.CityID == 0 {
		ve.add("city_id", "is required")
	}
	if q.Adults < 1 {
		ve.add("adults", "must be at least 1")
	}
	if q.Children < 0 {
		ve.add("children", "must not be negative")
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		ve.add("min_price", "must not exceed max_price")
	}
	if q.Stay.Nights() <= 0 {
		return invalid(ErrInvalidDateRange, "check_out", "must be after check_in")
	}
	return ve.err()
}

func extraAdultsFor(rt models.RoomType, adults int) int {
	if adults > rt.BaseCapacity {
		return adults - rt.BaseCapacity
	}
	return 0
}

// QuoteCart prices a cart over a stay. Every line must be priceable on every
// night; otherwise the whole quote fails with ErrNotPriceable.
func (s *SearchService) QuoteCart(ctx context.Context, items []CartItem, stay DateRange, customer models.Customer) (*Quote, error) {
	return quoteCart(ctx, s.catalog, s.log, items, stay, customer)
}

func quoteCart(ctx context.Context, catalog repository.Catalog, log *logrus.Logger, items []CartItem, stay DateRange, customer models.Customer) (*Quote, error) {
	roomTypes, err := loadCart(ctx, catalog, items)
	if err != nil {
		return nil, err
	}
	if stay.Nights() <= 0 {
		return nil, invalid(ErrInvalidDateRange, "check_out", "must be after check_in")
	}

	hotelID := roomTypes[items[0].RoomTypeID].HotelID
	ids := make([]uint, 0, len(roomTypes))
	for id := range roomTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	prices, err := catalog.ListDailyPrices(ctx, ids, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	table := newPriceTable(prices)

	terms, err := NewRateResolver(catalog, log).Terms(ctx, customer, hotelID, stay)
	if err != nil {
		return nil, err
	}

	quote := &Quote{HotelID: hotelID, Stay: stay, Lines: make([]QuoteLine, 0, len(items))}
	for _, it := range items {
		var lineTotal int64
		for _, day := range stay.Days() {
			public, ok := table.get(it.RoomTypeID, it.BoardTypeID, day)
			if !ok {
				return nil, &NotPriceableError{RoomTypeID: it.RoomTypeID, BoardTypeID: it.BoardTypeID, Date: day}
			}
			lineTotal += terms.Apply(it.RoomTypeID, day, public).LineTotal(it.Quantity, it.ExtraAdults, it.Children)
		}
		quote.Lines = append(quote.Lines, QuoteLine{CartItem: it, Total: lineTotal})
		quote.Total += lineTotal
	}
	return quote, nil
}

// loadCart checks the shape of a cart and loads its room types. All lines
// must belong to one hotel.
func loadCart(ctx context.Context, catalog repository.Catalog, items []CartItem) (map[uint]models.RoomType, error) {
	if len(items) == 0 {
		return nil, invalid(ErrInvalidCart, "items", "cart is empty")
	}
	ve := newValidationError(ErrInvalidCart)
	roomTypes := make(map[uint]models.RoomType)
	boards := make(map[uint]bool)
	var hotelID uint
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if it.Quantity < 1 {
			ve.add(field+".quantity", "must be at least 1")
		}
		if it.ExtraAdults < 0 || it.Children < 0 {
			ve.add(field, "extra_adults and children must not be negative")
		}

		rt, ok := roomTypes[it.RoomTypeID]
		if !ok {
			found, err := catalog.GetRoomType(ctx, it.RoomTypeID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					ve.add(field+".room_type_id", "unknown room type")
					continue
				}
				return nil, err
			}
			rt = *found
			roomTypes[rt.ID] = rt
		}
		if hotelID == 0 {
			hotelID = rt.HotelID
		} else if rt.HotelID != hotelID {
			ve.add(field+".room_type_id", "all rooms must belong to the same hotel")
		}

		if !boards[it.BoardTypeID] {
			if _, err := catalog.GetBoardType(ctx, it.BoardTypeID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					ve.add(field+".board_type_id", "unknown board type")
					continue
				}
				return nil, err
			}
			boards[it.BoardTypeID] = true
		}
	}
	if err := ve.err(); err != nil {
		return nil, err
	}
	return roomTypes, nil
}

// priceTable indexes public prices by room type, board type and day.
type priceTable map[uint]map[uint]map[string]models.PriceTriple

func newPriceTable(prices []models.DailyPrice) priceTable {
	t := make(priceTable)
	for _, p := range prices {
		byBoard, ok := t[p.RoomTypeID]
		if !ok {
			byBoard = make(map[uint]map[string]models.PriceTriple)
			t[p.RoomTypeID] = byBoard
		}
		byDay, ok := byBoard[p.BoardTypeID]
		if !ok {
			byDay = make(map[string]models.PriceTriple)
			byBoard[p.BoardTypeID] = byDay
		}
		byDay[dayKey(p.Date)] = p.Triple()
	}
	return t
}

func (t priceTable) get(roomTypeID, boardTypeID uint, day time.Time) (models.PriceTriple, bool) {
	p, ok := t[roomTypeID][boardTypeID][dayKey(day)]
	return p, ok
}

func (t priceTable) boards(roomTypeID uint) []uint {
	ids := make([]uint, 0, len(t[roomTypeID]))
	for id := range t[roomTypeID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// stayTotal sums a line over the stay. complete is false when any night
// lacks a public price.
func (t priceTable) stayTotal(terms *PricingTerms, roomTypeID, boardTypeID uint, stay DateRange, quantity, extraAdults, children int) (total int64, complete bool) {
	for _, day := range stay.Days() {
		public, ok := t.get(roomTypeID, boardTypeID, day)
		if !ok {
			return 0, false
		}
		total += terms.Apply(roomTypeID, day, public).LineTotal(quantity, extraAdults, children)
	}
	return total, true
}
