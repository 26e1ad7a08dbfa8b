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

type WalletService struct {
	store      repository.Store
	dispatcher *Dispatcher
	log        *logrus.Logger
	now        func() time.Time
}

func NewWalletService(store repository.Store, dispatcher *Dispatcher, log *logrus.Logger) *WalletService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WalletService{store: store, dispatcher: dispatcher, log: log, now: time.Now}
}

// WalletView is a wallet with its latest transactions, newest first.
type WalletView struct {
	Wallet       models.Wallet              `json:"wallet"`
	Transactions []models.WalletTransaction `json:"transactions"`
}

// GetWallet returns the caller's wallet. A user without one sees an empty
// wallet.
func (s *WalletService) GetWallet(ctx context.Context, customer models.Customer) (*WalletView, error) {
	if customer.IsAnonymous() {
		return nil, ErrForbidden
	}
	w, err := s.store.GetWalletByUser(ctx, customer.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return &WalletView{Wallet: models.Wallet{UserID: customer.UserID}, Transactions: []models.WalletTransaction{}}, nil
	}
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListWalletTransactions(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &WalletView{Wallet: *w, Transactions: txs}, nil
}

// RequestDeposit opens a pending deposit. The wallet is credited only when
// verified payment evidence for the deposit arrives.
func (s *WalletService) RequestDeposit(ctx context.Context, customer models.Customer, amount int64, reference string) (*models.WalletTransaction, error) {
	if customer.IsAnonymous() {
		return nil, ErrForbidden
	}
	if amount <= 0 {
		return nil, invalid(ErrInvalidPayment, "amount", "must be positive")
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		reference = uuid.NewString()
	}

	var wt *models.WalletTransaction
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		w, err := walletOf(ctx, tx, customer.UserID)
		if err != nil {
			return err
		}
		wt = &models.WalletTransaction{
			WalletID:  w.ID,
			Type:      models.WalletDeposit,
			Amount:    amount,
			Status:    models.WalletTxPending,
			Reference: reference,
		}
		if err := tx.CreateWalletTransaction(ctx, wt); err != nil {
			return fmt.Errorf("create deposit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":   customer.UserID,
		"wallet_tx": wt.ID,
		"amount":    amount,
	}).Info("deposit requested")
	return wt, nil
}

// walletOf returns the user's wallet, opening an empty one on first use.
func walletOf(ctx context.Context, tx repository.Store, userID uint) (*models.Wallet, error) {
	w, err := tx.GetWalletByUser(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	w = &models.Wallet{UserID: userID}
	if err := tx.CreateWallet(ctx, w); err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	return w, nil
}

// PayFromWallet moves amount from the caller's wallet to one of their
// bookings. An amount of zero pays the outstanding balance.
func (s *WalletService) PayFromWallet(ctx context.Context, bookingID uint, customer models.Customer, amount int64) (*models.Booking, error) {
	if customer.IsAnonymous() {
		return nil, ErrForbidden
	}
	if amount < 0 {
		return nil, invalid(ErrInvalidPayment, "amount", "must not be negative")
	}

	var (
		booking *models.Booking
		notify  bool
	)
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !b.OwnedBy(customer) {
			return ErrForbidden
		}
		if models.IsTerminalStatus(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrAlreadyProcessed, b.Status)
		}
		due := b.TotalPrice - b.PaidAmount
		if due <= 0 {
			return fmt.Errorf("%w: booking is fully paid", ErrAlreadyProcessed)
		}
		if amount == 0 || amount > due {
			amount = due
		}

		found, err := tx.GetWalletByUser(ctx, customer.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInsufficientWalletBalance
			}
			return err
		}
		w, err := tx.LockWallet(ctx, found.ID)
		if err != nil {
			return err
		}
		if w.Balance < amount {
			return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientWalletBalance, w.Balance, amount)
		}
		w.Balance -= amount
		if err := tx.SaveWallet(ctx, w); err != nil {
			return fmt.Errorf("save wallet: %w", err)
		}

		ref := uuid.NewString()
		id := b.ID
		if err := tx.CreateWalletTransaction(ctx, &models.WalletTransaction{
			WalletID:  w.ID,
			BookingID: &id,
			Type:      models.WalletPayment,
			Amount:    amount,
			Status:    models.WalletTxCompleted,
			Reference: ref,
		}); err != nil {
			return fmt.Errorf("record wallet payment: %w", err)
		}

		now := s.now().UTC()
		if err := tx.CreatePaymentConfirmation(ctx, &models.PaymentConfirmation{
			TargetKind:  models.TargetBooking,
			TargetID:    b.ID,
			Method:      models.PaymentWallet,
			Amount:      amount,
			Reference:   "wallet-" + ref,
			IsVerified:  true,
			SubmittedAt: now,
			VerifiedAt:  &now,
		}); err != nil {
			return fmt.Errorf("record wallet confirmation: %w", err)
		}

		notify, err = reconcileBooking(ctx, tx, b)
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"amount":     amount,
		"status":     booking.Status,
	}).Info("booking paid from wallet")
	if notify {
		if full, err := s.store.GetBooking(ctx, booking.ID); err == nil {
			booking = full
		}
		s.dispatcher.BookingConfirmed(*booking)
	}
	return booking, nil
}
