package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

var night = time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	err := s.Insert(
		&models.Agency{ID: 1, Name: "Alborz", CreditLimit: 1_000},
		&models.DailyAvailability{ID: 2, RoomTypeID: 5, Date: night, RemainingQuantity: 3},
	)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestFailedTransactionRestoresSnapshot(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(tx repository.Store) error {
		rows, err := tx.LockDailyAvailability(ctx, []uint{5}, night, night.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		rows[0].RemainingQuantity = 0
		if err := tx.SaveDailyAvailability(ctx, rows); err != nil {
			return err
		}
		agency, err := tx.LockAgency(ctx, 1)
		if err != nil {
			return err
		}
		agency.CurrentBalance = 900
		if err := tx.SaveAgency(ctx, agency); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	rows, _ := s.ListDailyAvailability(ctx, []uint{5}, night, night.AddDate(0, 0, 1))
	if len(rows) != 1 || rows[0].RemainingQuantity != 3 {
		t.Fatalf("availability not restored: %+v", rows)
	}
	agency, _ := s.GetAgency(ctx, 1)
	if agency.CurrentBalance != 0 {
		t.Fatalf("agency not restored: %d", agency.CurrentBalance)
	}
}

func TestLocksRequireTransaction(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if _, err := s.LockAgency(ctx, 1); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("LockAgency: expected ErrNoTransaction, got %v", err)
	}
	if _, err := s.LockDailyAvailability(ctx, []uint{5}, night, night.AddDate(0, 0, 1)); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("LockDailyAvailability: expected ErrNoTransaction, got %v", err)
	}
	if _, err := s.LockBooking(ctx, 1); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("LockBooking: expected ErrNoTransaction, got %v", err)
	}
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := tx.WithinTransaction(ctx, func(inner repository.Store) error {
			return inner.CreateWallet(ctx, &models.Wallet{UserID: 9})
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := s.GetWalletByUser(ctx, 9); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("inner write survived the outer rollback: %v", err)
	}
}

func TestUniqueConstraints(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if err := s.Insert(&models.DailyAvailability{RoomTypeID: 5, Date: night, RemainingQuantity: 1}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate availability row, got %v", err)
	}

	pc := &models.PaymentConfirmation{TargetKind: models.TargetBooking, TargetID: 4, Amount: 10, Reference: "r-1"}
	if err := s.CreatePaymentConfirmation(ctx, pc); err != nil {
		t.Fatalf("create: %v", err)
	}
	again := &models.PaymentConfirmation{TargetKind: models.TargetBooking, TargetID: 4, Amount: 20, Reference: "r-1"}
	if err := s.CreatePaymentConfirmation(ctx, again); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate reference, got %v", err)
	}
	other := &models.PaymentConfirmation{TargetKind: models.TargetWalletTransaction, TargetID: 4, Amount: 20, Reference: "r-1"}
	if err := s.CreatePaymentConfirmation(ctx, other); err != nil {
		t.Fatalf("same reference on another target kind: %v", err)
	}

	if err := s.CreateBooking(ctx, &models.Booking{BookingCode: "BK1"}); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := s.CreateBooking(ctx, &models.Booking{BookingCode: "BK1"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate booking code, got %v", err)
	}
}

func TestSaveAvailabilityRejectsNegative(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	err := s.WithinTransaction(ctx, func(tx repository.Store) error {
		rows, err := tx.LockDailyAvailability(ctx, []uint{5}, night, night.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		rows[0].RemainingQuantity = -1
		return tx.SaveDailyAvailability(ctx, rows)
	})
	if err == nil {
		t.Fatalf("expected negative inventory to be rejected")
	}
}

func TestInsertKeepsExplicitIDs(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	w := &models.Wallet{UserID: 3}
	if err := s.CreateWallet(ctx, w); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if w.ID <= 2 {
		t.Fatalf("generated id %d collides with seeded ids", w.ID)
	}
	if _, err := s.GetAgency(ctx, 1); err != nil {
		t.Fatalf("agency 1: %v", err)
	}
}
