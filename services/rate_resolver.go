package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// Pricing rules reported by PricingTerms.
const (
	RulePublic          = "public"
	RuleStaticContract  = "static_contract"
	RuleDynamicContract = "dynamic_contract"
	RuleAgencyDefault   = "agency_default"
)

// RateResolver turns public daily prices into the price a customer pays.
type RateResolver struct {
	catalog repository.Catalog
	log     *logrus.Logger
}

func NewRateResolver(catalog repository.Catalog, log *logrus.Logger) *RateResolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RateResolver{catalog: catalog, log: log}
}

// ResolvePrice returns the nightly price triple of a room type with a board
// type on one day. A day without a public price is never sellable, whatever
// contract the customer holds.
func (r *RateResolver) ResolvePrice(ctx context.Context, roomType *models.RoomType, boardTypeID uint, day time.Time, customer models.Customer) (models.PriceTriple, error) {
	day = Day(day)
	price, err := r.catalog.GetDailyPrice(ctx, roomType.ID, boardTypeID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PriceTriple{}, &NotPriceableError{RoomTypeID: roomType.ID, BoardTypeID: boardTypeID, Date: day}
		}
		return models.PriceTriple{}, fmt.Errorf("resolve price: %w", err)
	}

	terms, err := r.Terms(ctx, customer, roomType.HotelID, DateRange{CheckIn: day, CheckOut: day.AddDate(0, 0, 1)})
	if err != nil {
		return models.PriceTriple{}, err
	}
	triple, rule := terms.resolve(roomType.ID, day, price.Triple())
	r.log.WithFields(logrus.Fields{
		"room_type_id":  roomType.ID,
		"board_type_id": boardTypeID,
		"date":          day.Format(dayLayout),
		"rule":          rule,
	}).Debug("price resolved")
	return triple, nil
}

// Terms loads everything needed to price a hotel for a customer over a
// stay: the agency, its contracts overlapping the stay and their static
// rates. Public customers get empty terms.
func (r *RateResolver) Terms(ctx context.Context, customer models.Customer, hotelID uint, stay DateRange) (*PricingTerms, error) {
	if !customer.IsAgent() {
		return &PricingTerms{}, nil
	}
	agency, err := r.catalog.GetAgency(ctx, *customer.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("load agency %d: %w", *customer.AgencyID, err)
	}
	contracts, err := r.catalog.ListContracts(ctx, agency.ID, hotelID, stay.CheckIn, stay.LastNight())
	if err != nil {
		return nil, fmt.Errorf("load contracts: %w", err)
	}
	sortContracts(contracts)

	ids := make([]uint, 0, len(contracts))
	for _, c := range contracts {
		if c.Type == models.ContractStatic {
			ids = append(ids, c.ID)
		}
	}
	rates, err := r.catalog.ListStaticRates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load static rates: %w", err)
	}

	terms := &PricingTerms{
		agency:    agency,
		contracts: contracts,
		rates:     make(map[uint]map[uint]models.StaticRate, len(ids)),
	}
	for _, rate := range rates {
		byRoom, ok := terms.rates[rate.ContractID]
		if !ok {
			byRoom = make(map[uint]models.StaticRate)
			terms.rates[rate.ContractID] = byRoom
		}
		byRoom[rate.RoomTypeID] = rate
	}
	return terms, nil
}

// sortContracts orders by priority descending, then id ascending.
func sortContracts(contracts []models.Contract) {
	sort.SliceStable(contracts, func(i, j int) bool {
		if contracts[i].Priority != contracts[j].Priority {
			return contracts[i].Priority > contracts[j].Priority
		}
		return contracts[i].ID < contracts[j].ID
	})
}

// PricingTerms is the pricing context of one customer at one hotel.
type PricingTerms struct {
	agency    *models.Agency
	contracts []models.Contract
	rates     map[uint]map[uint]models.StaticRate
}

// Apply prices one night of a room type given its public price.
func (t *PricingTerms) Apply(roomTypeID uint, day time.Time, public models.PriceTriple) models.PriceTriple {
	p, _ := t.resolve(roomTypeID, day, public)
	return p
}

func (t *PricingTerms) resolve(roomTypeID uint, day time.Time, public models.PriceTriple) (models.PriceTriple, string) {
	if t == nil || t.agency == nil {
		return public, RulePublic
	}

	var winner *models.Contract
	for i := range t.contracts {
		if t.contracts[i].Covers(day) {
			winner = &t.contracts[i]
			break
		}
	}

	if winner != nil {
		switch winner.Type {
		case models.ContractStatic:
			if rate, ok := t.rates[winner.ID][roomTypeID]; ok {
				return rate.Triple(), RuleStaticContract
			}
			// no static rate for this room: fall through to the best
			// dynamic contract of the day, then to the agency default
			for i := range t.contracts {
				c := t.contracts[i]
				if c.Type == models.ContractDynamic && c.Covers(day) {
					if c.DiscountPercentage > 0 {
						return discountBase(public, c.DiscountPercentage), RuleDynamicContract
					}
					break
				}
			}
		case models.ContractDynamic:
			if winner.DiscountPercentage > 0 {
				return discountBase(public, winner.DiscountPercentage), RuleDynamicContract
			}
		}
	}

	if t.agency.DefaultDiscountPercentage > 0 {
		return discountBase(public, t.agency.DefaultDiscountPercentage), RuleAgencyDefault
	}
	return public, RulePublic
}

func discountBase(p models.PriceTriple, pct int) models.PriceTriple {
	p.Base = applyDiscount(p.Base, pct)
	return p
}

// applyDiscount takes pct percent off amount, rounding half up.
func applyDiscount(amount int64, pct int) int64 {
	if pct <= 0 {
		return amount
	}
	if pct >= 100 {
		return 0
	}
	return (amount*int64(100-pct) + 50) / 100
}
