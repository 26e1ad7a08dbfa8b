package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// DeriveBookingStatus is the reconciliation rule. Terminal states are kept;
// otherwise a fully paid booking is confirmed, one with receipts awaiting
// review is awaiting_confirmation and anything else is pending.
func DeriveBookingStatus(previous string, paid, total int64, hasPending bool) string {
	switch {
	case models.IsTerminalStatus(previous):
		return previous
	case paid >= total:
		return models.StatusConfirmed
	case hasPending:
		return models.StatusAwaitingConfirmation
	default:
		return models.StatusPending
	}
}

// reconcileBooking recomputes paid_amount and status from the confirmations
// of the booking and saves it. It reports whether a confirmation notice has
// to go out; that happens once per booking.
func reconcileBooking(ctx context.Context, tx repository.Store, b *models.Booking) (bool, error) {
	list, err := tx.ListPaymentConfirmations(ctx, models.BookingTarget(b.ID))
	if err != nil {
		return false, fmt.Errorf("list confirmations: %w", err)
	}
	var verified int64
	pending := false
	for _, pc := range list {
		switch {
		case pc.IsVerified:
			verified += pc.Amount
		case !pc.IsRejected:
			pending = true
		}
	}

	b.PaidAmount = verified
	b.Status = DeriveBookingStatus(b.Status, verified, b.TotalPrice, pending)
	notify := b.Status == models.StatusConfirmed && !b.NotificationSent
	if notify {
		b.NotificationSent = true
	}
	if err := tx.SaveBooking(ctx, b); err != nil {
		return false, fmt.Errorf("save booking: %w", err)
	}
	return notify, nil
}

// reconcileWalletTransaction completes a pending deposit once verified
// evidence covers it, and credits the wallet. Completed or failed entries
// are left alone.
func reconcileWalletTransaction(ctx context.Context, tx repository.Store, wt *models.WalletTransaction) error {
	if wt.Status != models.WalletTxPending {
		return nil
	}
	list, err := tx.ListPaymentConfirmations(ctx, models.WalletTransactionTarget(wt.ID))
	if err != nil {
		return fmt.Errorf("list confirmations: %w", err)
	}
	var verified int64
	for _, pc := range list {
		if pc.IsVerified {
			verified += pc.Amount
		}
	}
	if verified < wt.Amount {
		return nil
	}

	wallet, err := tx.LockWallet(ctx, wt.WalletID)
	if err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}
	wt.Status = models.WalletTxCompleted
	if err := tx.SaveWalletTransaction(ctx, wt); err != nil {
		return fmt.Errorf("save wallet transaction: %w", err)
	}
	wallet.Balance += wt.Amount
	if err := tx.SaveWallet(ctx, wallet); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}

type PaymentInput struct {
	Target    models.PaymentTarget
	Method    string
	Amount    int64
	Reference string
	// Verified is set by trusted sources such as a gateway callback.
	Verified bool
	Customer models.Customer
}

// PaymentService records payment evidence and keeps bookings and wallet
// deposits reconciled with it.
type PaymentService struct {
	store      repository.Store
	dispatcher *Dispatcher
	log        *logrus.Logger
	now        func() time.Time
}

func NewPaymentService(store repository.Store, dispatcher *Dispatcher, log *logrus.Logger) *PaymentService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentService{store: store, dispatcher: dispatcher, log: log, now: time.Now}
}

// RecordPaymentConfirmation stores a piece of payment evidence and
// reconciles its target in the same transaction. Submitting the same
// reference again for a target is the same evidence: it may upgrade an
// unverified receipt to verified, but evidence that is already verified is
// rejected with ErrAlreadyProcessed.
func (s *PaymentService) RecordPaymentConfirmation(ctx context.Context, in PaymentInput) (*models.PaymentConfirmation, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	in.Reference = strings.TrimSpace(in.Reference)
	if in.Reference == "" {
		in.Reference = uuid.NewString()
	}

	var (
		saved     *models.PaymentConfirmation
		confirmed *models.Booking
	)
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var (
			booking *models.Booking
			wt      *models.WalletTransaction
			err     error
		)
		switch in.Target.Kind {
		case models.TargetBooking:
			booking, err = tx.LockBooking(ctx, in.Target.ID)
			if err != nil {
				return err
			}
			if !in.Customer.IsOperator() && !booking.OwnedBy(in.Customer) {
				return ErrForbidden
			}
			if models.IsTerminalStatus(booking.Status) {
				return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, booking.Status)
			}
		case models.TargetWalletTransaction:
			wt, err = tx.LockWalletTransaction(ctx, in.Target.ID)
			if err != nil {
				return err
			}
			if err := s.authorizeWallet(ctx, tx, wt, in.Customer); err != nil {
				return err
			}
			if wt.Status != models.WalletTxPending {
				return fmt.Errorf("%w: wallet transaction is %s", ErrAlreadyProcessed, wt.Status)
			}
			if in.Amount != wt.Amount {
				return invalid(ErrInvalidPayment, "amount", fmt.Sprintf("deposit amount is %d", wt.Amount))
			}
		}

		pc, err := s.upsertEvidence(ctx, tx, in)
		if err != nil {
			return err
		}
		saved = pc

		if booking != nil {
			notify, err := reconcileBooking(ctx, tx, booking)
			if err != nil {
				return err
			}
			if notify {
				confirmed = booking
			}
			return nil
		}
		return reconcileWalletTransaction(ctx, tx, wt)
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"target":    in.Target.String(),
			"reference": in.Reference,
			"error":     err.Error(),
		}).Warn("payment confirmation rejected")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": saved.ID,
		"target":     in.Target.String(),
		"amount":     saved.Amount,
		"verified":   saved.IsVerified,
	}).Info("payment confirmation recorded")
	s.notifyConfirmed(ctx, confirmed)
	return saved, nil
}

func (s *PaymentService) validate(in PaymentInput) error {
	ve := newValidationError(ErrInvalidPayment)
	if !in.Target.Valid() {
		ve.add("target", "must be a booking or a wallet transaction")
	}
	if in.Amount <= 0 {
		ve.add("amount", "must be positive")
	}
	switch in.Method {
	case models.PaymentOnline, models.PaymentOffline:
	default:
		ve.add("method", "must be online or offline")
	}
	if err := ve.err(); err != nil {
		return err
	}
	if in.Verified && !in.Customer.IsOperator() {
		return fmt.Errorf("%w: only operators and gateways submit verified payments", ErrForbidden)
	}
	if in.Customer.IsAnonymous() && !in.Customer.IsOperator() {
		return ErrForbidden
	}
	return nil
}

func (s *PaymentService) upsertEvidence(ctx context.Context, tx repository.Store, in PaymentInput) (*models.PaymentConfirmation, error) {
	now := s.now().UTC()
	existing, err := tx.FindPaymentConfirmation(ctx, in.Target, in.Reference)
	switch {
	case err == nil:
		if existing.IsVerified {
			return nil, fmt.Errorf("%w: payment %s already verified", ErrAlreadyProcessed, in.Reference)
		}
		if existing.IsRejected {
			return nil, fmt.Errorf("%w: payment %s was rejected", ErrAlreadyProcessed, in.Reference)
		}
		if !in.Verified {
			// the same receipt uploaded twice
			return existing, nil
		}
		existing.IsVerified = true
		existing.VerifiedAt = &now
		if err := tx.SavePaymentConfirmation(ctx, existing); err != nil {
			return nil, fmt.Errorf("save payment confirmation: %w", err)
		}
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find payment confirmation: %w", err)
	}

	pc := &models.PaymentConfirmation{
		TargetKind:  in.Target.Kind,
		TargetID:    in.Target.ID,
		Method:      in.Method,
		Amount:      in.Amount,
		Reference:   in.Reference,
		IsVerified:  in.Verified,
		SubmittedAt: now,
	}
	if in.Verified {
		pc.VerifiedAt = &now
	}
	if err := tx.CreatePaymentConfirmation(ctx, pc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: payment %s", ErrAlreadyProcessed, in.Reference)
		}
		return nil, fmt.Errorf("create payment confirmation: %w", err)
	}
	return pc, nil
}

func (s *PaymentService) authorizeWallet(ctx context.Context, tx repository.Store, wt *models.WalletTransaction, customer models.Customer) error {
	if customer.IsOperator() {
		return nil
	}
	wallet, err := tx.GetWalletByUser(ctx, customer.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if wallet.ID != wt.WalletID {
		return ErrForbidden
	}
	return nil
}

// VerifyPaymentConfirmation records an operator's verdict on a receipt and
// reconciles its target. An accepted receipt counts towards the paid amount;
// a rejected one no longer holds the booking in awaiting_confirmation and
// fails the deposit it was uploaded for.
func (s *PaymentService) VerifyPaymentConfirmation(ctx context.Context, id uint, verified bool, customer models.Customer) (*models.PaymentConfirmation, error) {
	if !customer.IsOperator() {
		return nil, ErrForbidden
	}
	current, err := s.store.GetPaymentConfirmation(ctx, id)
	if err != nil {
		return nil, err
	}

	var confirmed *models.Booking
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var (
			booking *models.Booking
			wt      *models.WalletTransaction
			err     error
		)
		// target first, then the evidence row
		switch current.TargetKind {
		case models.TargetBooking:
			booking, err = tx.LockBooking(ctx, current.TargetID)
			if err != nil {
				return err
			}
			if models.IsTerminalStatus(booking.Status) {
				return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, booking.Status)
			}
		case models.TargetWalletTransaction:
			wt, err = tx.LockWalletTransaction(ctx, current.TargetID)
			if err != nil {
				return err
			}
			if wt.Status != models.WalletTxPending {
				return fmt.Errorf("%w: wallet transaction is %s", ErrAlreadyProcessed, wt.Status)
			}
		default:
			return fmt.Errorf("%w: unknown target %q", ErrInvalidPayment, current.TargetKind)
		}

		pc, err := tx.LockPaymentConfirmation(ctx, id)
		if err != nil {
			return err
		}
		if pc.IsVerified || pc.IsRejected {
			return fmt.Errorf("%w: payment %d already reviewed", ErrAlreadyProcessed, id)
		}
		now := s.now().UTC()
		if verified {
			pc.IsVerified = true
			pc.VerifiedAt = &now
		} else {
			pc.IsRejected = true
			pc.RejectedAt = &now
		}
		if err := tx.SavePaymentConfirmation(ctx, pc); err != nil {
			return fmt.Errorf("save payment confirmation: %w", err)
		}
		current = pc

		if booking != nil {
			notify, err := reconcileBooking(ctx, tx, booking)
			if err != nil {
				return err
			}
			if notify {
				confirmed = booking
			}
			return nil
		}
		if !verified {
			wt.Status = models.WalletTxFailed
			if err := tx.SaveWalletTransaction(ctx, wt); err != nil {
				return fmt.Errorf("save wallet transaction: %w", err)
			}
			return nil
		}
		return reconcileWalletTransaction(ctx, tx, wt)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": id,
		"target":     current.Target().String(),
		"amount":     current.Amount,
		"verified":   verified,
	}).Info("payment confirmation reviewed")
	s.notifyConfirmed(ctx, confirmed)
	return current, nil
}

// notifyConfirmed reloads the booking with its guests and hands it to the
// dispatcher.
func (s *PaymentService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if b == nil {
		return
	}
	full, err := s.store.GetBooking(ctx, b.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"booking_id": b.ID, "error": err.Error()}).Warn("reload confirmed booking")
		full = b
	}
	s.dispatcher.BookingConfirmed(*full)
}
