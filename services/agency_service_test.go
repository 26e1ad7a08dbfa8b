package services

import (
	"context"
	"errors"
	"testing"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

func TestRecordLedgerEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agencies := NewAgencyService(f.store, f.log)

	if _, err := f.bookings.CreateBooking(ctx, BookingInput{
		Items:         []CartItem{{RoomTypeID: doubleRoom, BoardTypeID: breakfast, Quantity: 1}},
		Stay:          stay(0, 2),
		Guests:        []models.Guest{principal()},
		PaymentMethod: models.PaymentAgencyCredit,
		Customer:      agent(),
	}); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	agency, err := f.store.GetAgency(ctx, agencyID)
	if err != nil {
		t.Fatalf("get agency: %v", err)
	}
	debt := agency.CurrentBalance
	if debt <= 0 {
		t.Fatalf("expected debt after a credit booking, got %d", debt)
	}

	if _, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: agencyID, Type: models.AgencyTxPayment, Amount: 100, Customer: agent()}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("agent entry: expected ErrForbidden, got %v", err)
	}
	if _, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: agencyID, Type: models.AgencyTxPayment, Amount: debt + 1, Customer: operator()}); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("overpayment: expected ErrInvalidPayment, got %v", err)
	}
	if _, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: agencyID, Type: models.AgencyTxRefund, Amount: 100, Customer: operator()}); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("refund entry: expected ErrInvalidPayment, got %v", err)
	}
	if _, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: 999, Type: models.AgencyTxAdjustment, Amount: 100, Customer: operator()}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown agency: expected ErrNotFound, got %v", err)
	}

	paid, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: agencyID, Type: models.AgencyTxPayment, Amount: debt, Description: "bank transfer", Customer: operator()})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if paid.Amount != -debt {
		t.Fatalf("expected ledger amount %d, got %d", -debt, paid.Amount)
	}
	if _, err := agencies.RecordLedgerEntry(ctx, LedgerInput{AgencyID: agencyID, Type: models.AgencyTxAdjustment, Amount: 50_000, Customer: operator()}); err != nil {
		t.Fatalf("adjustment: %v", err)
	}

	agency, _ = f.store.GetAgency(ctx, agencyID)
	if agency.CurrentBalance != 50_000 {
		t.Fatalf("expected balance 50,000, got %d", agency.CurrentBalance)
	}
	ledger := f.store.AgencyTransactions(agencyID)
	if len(ledger) != 3 {
		t.Fatalf("expected booking, payment and adjustment entries, got %+v", ledger)
	}
	var sum int64
	for _, e := range ledger {
		sum += e.Amount
	}
	if sum != agency.CurrentBalance {
		t.Fatalf("ledger sums to %d, balance is %d", sum, agency.CurrentBalance)
	}
	if ledger[1].Type != models.AgencyTxPayment || ledger[2].Type != models.AgencyTxAdjustment {
		t.Fatalf("unexpected ledger order %+v", ledger)
	}
}
