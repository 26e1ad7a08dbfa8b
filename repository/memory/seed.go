package memory

import (
	"fmt"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// Insert adds reference data to the store. Records are passed by pointer;
// a zero ID is replaced by a generated one.
func (s *Store) Insert(records ...any) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.data
	for _, rec := range records {
		switch r := rec.(type) {
		case *models.City:
			s.assign(&r.ID)
			d.cities[r.ID] = *r
		case *models.Hotel:
			s.assign(&r.ID)
			if r.BookingWorkflow == "" {
				r.BookingWorkflow = models.WorkflowInstant
			}
			d.hotels[r.ID] = copyHotel(*r)
		case *models.RoomType:
			s.assign(&r.ID)
			d.roomTypes[r.ID] = *r
		case *models.BoardType:
			s.assign(&r.ID)
			d.boardTypes[r.ID] = *r
		case *models.Agency:
			s.assign(&r.ID)
			d.agencies[r.ID] = copyAgency(*r)
		case *models.Contract:
			s.assign(&r.ID)
			d.contracts[r.ID] = *r
		case *models.StaticRate:
			s.assign(&r.ID)
			d.staticRates[r.ID] = *r
		case *models.DailyPrice:
			for _, p := range d.prices {
				if p.RoomTypeID == r.RoomTypeID && p.BoardTypeID == r.BoardTypeID && sameDay(p.Date, r.Date) {
					return fmt.Errorf("insert daily price: %w", repository.ErrDuplicate)
				}
			}
			s.assign(&r.ID)
			d.prices[r.ID] = *r
		case *models.DailyAvailability:
			for _, a := range d.availability {
				if a.RoomTypeID == r.RoomTypeID && sameDay(a.Date, r.Date) {
					return fmt.Errorf("insert availability: %w", repository.ErrDuplicate)
				}
			}
			if r.RemainingQuantity < 0 {
				return fmt.Errorf("insert availability: negative quantity %d", r.RemainingQuantity)
			}
			s.assign(&r.ID)
			d.availability[r.ID] = *r
		case *models.CancellationPolicy:
			s.assign(&r.ID)
			for i := range r.Rules {
				s.assign(&r.Rules[i].ID)
				r.Rules[i].PolicyID = r.ID
			}
			d.policies[r.ID] = copyPolicy(*r)
		case *models.SpecialPeriod:
			s.assign(&r.ID)
			d.periods[r.ID] = *r
		case *models.Wallet:
			s.assign(&r.ID)
			d.wallets[r.ID] = *r
		default:
			return fmt.Errorf("insert: unsupported record type %T", rec)
		}
	}
	return nil
}

func (s *Store) assign(id *uint) {
	if *id == 0 {
		*id = s.nextID()
		return
	}
	if *id > s.seq {
		s.seq = *id
	}
}
