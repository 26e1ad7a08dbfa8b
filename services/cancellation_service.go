package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// Change requests a customer can file against a live booking.
const (
	ChangeCancellation = "cancellation"
	ChangeModification = "modification"
)

type CancellationService struct {
	store  repository.Store
	ledger *AvailabilityLedger
	log    *logrus.Logger
	now    func() time.Time
}

func NewCancellationService(store repository.Store, log *logrus.Logger) *CancellationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CancellationService{store: store, ledger: NewAvailabilityLedger(store), log: log, now: time.Now}
}

// ComputeCancellationFee applies the policy rule matching daysBefore. When
// several rules match, the one with the greatest DaysBeforeMin wins. The fee
// never exceeds the booking total.
func ComputeCancellationFee(policy *models.CancellationPolicy, total int64, nights, daysBefore int) int64 {
	if policy == nil || total <= 0 {
		return 0
	}
	if daysBefore < 0 {
		daysBefore = 0
	}
	var rule *models.CancellationRule
	for i := range policy.Rules {
		r := &policy.Rules[i]
		if daysBefore < r.DaysBeforeMin || daysBefore > r.DaysBeforeMax {
			continue
		}
		if rule == nil || r.DaysBeforeMin > rule.DaysBeforeMin {
			rule = r
		}
	}
	if rule == nil {
		return 0
	}

	if nights < 1 {
		nights = 1
	}
	perNight := total / int64(nights)
	var fee int64
	switch rule.PenaltyType {
	case models.PenaltyPercentTotal:
		fee = (total*rule.PenaltyValue + 50) / 100
	case models.PenaltyPercentFirstNight:
		fee = (perNight*rule.PenaltyValue + 50) / 100
	case models.PenaltyFixedNights:
		fee = perNight * rule.PenaltyValue
	}
	if fee > total {
		fee = total
	}
	if fee < 0 {
		fee = 0
	}
	return fee
}

// daysBefore counts whole days from now until check-in, zero once the stay
// has started.
func daysBefore(now, checkIn time.Time) int {
	d := int(Day(checkIn).Sub(Day(now)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// CancelBooking cancels a live booking, returns its rooms to inventory and
// refunds what was paid minus the cancellation fee.
func (s *CancellationService) CancelBooking(ctx context.Context, id uint, customer models.Customer) (*models.Booking, error) {
	if customer.IsAnonymous() {
		return nil, ErrForbidden
	}
	var booking *models.Booking
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.OwnedBy(customer) {
			return ErrForbidden
		}
		if models.IsTerminalStatus(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, b.Status)
		}

		stay := stayOf(b)
		if err := s.ledger.Release(ctx, tx, demandOfRooms(b.Rooms), stay); err != nil {
			return err
		}

		policy, err := s.policyFor(ctx, tx, b)
		if err != nil {
			return err
		}
		fee := ComputeCancellationFee(policy, b.TotalPrice, stay.Nights(), daysBefore(s.now(), b.CheckIn))
		refund := b.PaidAmount - fee
		if refund < 0 {
			refund = 0
		}
		b.CancellationFee = fee
		b.RefundAmount = refund
		b.Status = models.StatusCancelled
		if err := tx.SaveBooking(ctx, b); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}

		if refund > 0 {
			if err := s.refund(ctx, tx, b, refund); err != nil {
				return err
			}
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"fee":        booking.CancellationFee,
		"refund":     booking.RefundAmount,
	}).Info("booking cancelled")
	return booking, nil
}

// policyFor picks the hotel's peak policy when check-in falls in a special
// period, its normal policy otherwise. A hotel without one charges nothing.
func (s *CancellationService) policyFor(ctx context.Context, tx repository.Store, b *models.Booking) (*models.CancellationPolicy, error) {
	hotel, err := tx.GetHotel(ctx, b.HotelID)
	if err != nil {
		return nil, fmt.Errorf("load hotel: %w", err)
	}
	peak, err := tx.IsPeakDay(ctx, Day(b.CheckIn))
	if err != nil {
		return nil, fmt.Errorf("check special periods: %w", err)
	}
	policyID := hotel.CancellationPolicyNormalID
	if peak && hotel.CancellationPolicyPeakID != nil {
		policyID = hotel.CancellationPolicyPeakID
	}
	if policyID == nil {
		return nil, nil
	}
	policy, err := tx.GetCancellationPolicy(ctx, *policyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cancellation policy: %w", err)
	}
	return policy, nil
}

// refund pays back agency credit bookings on the agency ledger and everyone
// else into their wallet.
func (s *CancellationService) refund(ctx context.Context, tx repository.Store, b *models.Booking, amount int64) error {
	id := b.ID
	if b.PaymentMethod == models.PaymentAgencyCredit && b.AgencyID != nil {
		agency, err := tx.LockAgency(ctx, *b.AgencyID)
		if err != nil {
			return fmt.Errorf("lock agency: %w", err)
		}
		agency.CurrentBalance -= amount
		if err := tx.SaveAgency(ctx, agency); err != nil {
			return fmt.Errorf("save agency: %w", err)
		}
		return tx.CreateAgencyTransaction(ctx, &models.AgencyTransaction{
			AgencyID:    agency.ID,
			BookingID:   &id,
			Type:        models.AgencyTxRefund,
			Amount:      -amount,
			Description: "cancellation " + b.BookingCode,
		})
	}

	if b.UserID == nil {
		return nil
	}
	w, err := walletOf(ctx, tx, *b.UserID)
	if err != nil {
		return err
	}
	w, err = tx.LockWallet(ctx, w.ID)
	if err != nil {
		return err
	}
	w.Balance += amount
	if err := tx.SaveWallet(ctx, w); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return tx.CreateWalletTransaction(ctx, &models.WalletTransaction{
		WalletID:  w.ID,
		BookingID: &id,
		Type:      models.WalletRefund,
		Amount:    amount,
		Status:    models.WalletTxCompleted,
		Reference: "refund-" + b.BookingCode,
	})
}

// RequestChange flags a live booking for the front desk to cancel or modify.
func (s *CancellationService) RequestChange(ctx context.Context, id uint, customer models.Customer, kind string) (*models.Booking, error) {
	var status string
	switch kind {
	case ChangeCancellation:
		status = models.StatusCancellationRequested
	case ChangeModification:
		status = models.StatusModificationRequested
	default:
		return nil, invalid(ErrInvalidTransition, "type", "must be cancellation or modification")
	}
	if customer.IsAnonymous() {
		return nil, ErrForbidden
	}

	var booking *models.Booking
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.OwnedBy(customer) {
			return ErrForbidden
		}
		if models.IsTerminalStatus(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, b.Status)
		}
		b.Status = status
		if err := tx.SaveBooking(ctx, b); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": id, "status": status}).Info("booking change requested")
	return booking, nil
}
