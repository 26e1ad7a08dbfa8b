// services/booking_service.go
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

// CodeGenerator hands out unique booking codes.
type CodeGenerator interface {
	NextCode() string
}

type BookingInput struct {
	Items         []CartItem
	Stay          DateRange
	Guests        []models.Guest
	PaymentMethod string
	Customer      models.Customer
}

// BookingService creates bookings and moves them through the front-desk
// states that are not driven by payments.
type BookingService struct {
	store      repository.Store
	ledger     *AvailabilityLedger
	codes      CodeGenerator
	dispatcher *Dispatcher
	log        *logrus.Logger
	now        func() time.Time
}

func NewBookingService(store repository.Store, codes CodeGenerator, dispatcher *Dispatcher, log *logrus.Logger) *BookingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{
		store:      store,
		ledger:     NewAvailabilityLedger(store),
		codes:      codes,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

// CreateBooking prices the cart again on the server, takes the rooms out of
// inventory and stores the booking with its rooms and guests, all in one
// transaction. Any failure leaves inventory and agency credit untouched.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if in.Customer.IsAnonymous() {
		return nil, fmt.Errorf("%w: sign in to book", ErrForbidden)
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentOnline
	}
	if !models.IsPaymentMethod(method) {
		return nil, invalid(ErrInvalidPayment, "payment_method", "unknown payment method")
	}
	if method == models.PaymentAgencyCredit && !in.Customer.IsAgent() {
		return nil, invalid(ErrInvalidPayment, "payment_method", "agency credit requires an agency account")
	}
	if in.Stay.Nights() <= 0 {
		return nil, invalid(ErrInvalidDateRange, "check_out", "must be after check_in")
	}

	roomTypes, err := loadCart(ctx, s.store, in.Items)
	if err != nil {
		return nil, err
	}
	if err := validateCapacity(in.Items, roomTypes, len(in.Guests)); err != nil {
		return nil, err
	}
	if err := validateGuests(in.Guests); err != nil {
		return nil, err
	}
	hotel, err := s.store.GetHotel(ctx, roomTypes[in.Items[0].RoomTypeID].HotelID)
	if err != nil {
		return nil, fmt.Errorf("load hotel: %w", err)
	}

	var (
		booking   *models.Booking
		confirmed bool
	)
	txErr := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		quote, err := quoteCart(ctx, tx, s.log, in.Items, in.Stay, in.Customer)
		if err != nil {
			return err
		}

		if err := s.ledger.Reserve(ctx, tx, demandOfCart(in.Items), in.Stay); err != nil {
			return err
		}

		var agency *models.Agency
		if method == models.PaymentAgencyCredit {
			agency, err = tx.LockAgency(ctx, *in.Customer.AgencyID)
			if err != nil {
				return fmt.Errorf("lock agency: %w", err)
			}
			if agency.IsBlacklisted(hotel.ID) {
				return fmt.Errorf("%w: agency %d at hotel %d", ErrHotelBlacklistedForCredit, agency.ID, hotel.ID)
			}
			if agency.CurrentBalance+quote.Total > agency.CreditLimit {
				return fmt.Errorf("%w: balance %d + %d over limit %d",
					ErrCreditLimitExceeded, agency.CurrentBalance, quote.Total, agency.CreditLimit)
			}
		}

		b := &models.Booking{
			BookingCode:   s.codes.NextCode(),
			AgencyID:      in.Customer.AgencyID,
			HotelID:       hotel.ID,
			CheckIn:       in.Stay.CheckIn,
			CheckOut:      in.Stay.CheckOut,
			Status:        initialStatus(hotel),
			PaymentMethod: method,
			TotalPrice:    quote.Total,
			Guests:        normalizeGuests(in.Guests),
		}
		userID := in.Customer.UserID
		b.UserID = &userID
		for _, line := range quote.Lines {
			b.Rooms = append(b.Rooms, models.BookingRoom{
				RoomTypeID:  line.RoomTypeID,
				BoardTypeID: line.BoardTypeID,
				Quantity:    line.Quantity,
				ExtraAdults: line.ExtraAdults,
				Children:    line.Children,
				TotalPrice:  line.Total,
			})
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		if agency != nil {
			if err := s.chargeAgency(ctx, tx, agency, b); err != nil {
				return err
			}
			confirmed, err = reconcileBooking(ctx, tx, b)
			if err != nil {
				return err
			}
		}
		booking = b
		return nil
	})
	if txErr != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": in.Customer.UserID,
			"stay":    in.Stay.String(),
			"method":  method,
			"error":   txErr.Error(),
		}).Warn("booking rejected")
		return nil, txErr
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"booking_code": booking.BookingCode,
		"hotel_id":     booking.HotelID,
		"total_price":  booking.TotalPrice,
		"status":       booking.Status,
	}).Info("booking created")

	if confirmed {
		s.dispatcher.BookingConfirmed(*booking)
	}
	return booking, nil
}

// chargeAgency books the total on the agency debt ledger and records it as
// verified payment evidence for the booking.
func (s *BookingService) chargeAgency(ctx context.Context, tx repository.Store, agency *models.Agency, b *models.Booking) error {
	agency.CurrentBalance += b.TotalPrice
	if err := tx.SaveAgency(ctx, agency); err != nil {
		return fmt.Errorf("save agency: %w", err)
	}
	bookingID := b.ID
	if err := tx.CreateAgencyTransaction(ctx, &models.AgencyTransaction{
		AgencyID:    agency.ID,
		BookingID:   &bookingID,
		Type:        models.AgencyTxBooking,
		Amount:      b.TotalPrice,
		Description: "booking " + b.BookingCode,
	}); err != nil {
		return fmt.Errorf("record agency transaction: %w", err)
	}

	now := s.now().UTC()
	pc := &models.PaymentConfirmation{
		TargetKind:  models.TargetBooking,
		TargetID:    b.ID,
		Method:      models.PaymentAgencyCredit,
		Amount:      b.TotalPrice,
		Reference:   "credit-" + b.BookingCode,
		IsVerified:  true,
		SubmittedAt: now,
		VerifiedAt:  &now,
	}
	if err := tx.CreatePaymentConfirmation(ctx, pc); err != nil {
		return fmt.Errorf("record credit payment: %w", err)
	}
	return nil
}

func initialStatus(hotel *models.Hotel) string {
	if hotel.BookingWorkflow == models.WorkflowManualReview {
		return models.StatusAwaitingConfirmation
	}
	return models.StatusPending
}

// GetBooking returns a booking with its rooms and guests. Only the owner and
// operators may read it.
func (s *BookingService) GetBooking(ctx context.Context, id uint, customer models.Customer) (*models.Booking, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !customer.IsOperator() && !b.OwnedBy(customer) {
		return nil, ErrForbidden
	}
	return b, nil
}

// CheckOut closes a confirmed booking once the guests have left.
func (s *BookingService) CheckOut(ctx context.Context, id uint, customer models.Customer) (*models.Booking, error) {
	if !customer.IsOperator() {
		return nil, ErrForbidden
	}
	var booking *models.Booking
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if models.IsTerminalStatus(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, b.Status)
		}
		if b.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: cannot check out a %s booking", ErrInvalidTransition, b.Status)
		}
		now := s.now().UTC()
		b.Status = models.StatusCheckedOut
		b.CheckedOutAt = &now
		if err := tx.SaveBooking(ctx, b); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.WithFields(logrus.Fields{"booking_id": id, "error": err.Error()}).Warn("check-out failed")
		}
		return nil, err
	}
	s.log.WithField("booking_id", id).Info("booking checked out")
	return booking, nil
}
