package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

// AgencyService keeps the agency debt ledger for entries made by operators.
// Bookings and refunds write their own entries.
type AgencyService struct {
	store repository.Store
	log   *logrus.Logger
}

func NewAgencyService(store repository.Store, log *logrus.Logger) *AgencyService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AgencyService{store: store, log: log}
}

// LedgerInput is one operator entry. A payment settles debt and must be
// positive; an adjustment is a signed correction of the balance.
type LedgerInput struct {
	AgencyID    uint
	Type        string
	Amount      int64
	Description string
	Customer    models.Customer
}

func (s *AgencyService) RecordLedgerEntry(ctx context.Context, in LedgerInput) (*models.AgencyTransaction, error) {
	if !in.Customer.IsOperator() {
		return nil, ErrForbidden
	}
	var delta int64
	switch in.Type {
	case models.AgencyTxPayment:
		if in.Amount <= 0 {
			return nil, invalid(ErrInvalidPayment, "amount", "must be positive")
		}
		delta = -in.Amount
	case models.AgencyTxAdjustment:
		if in.Amount == 0 {
			return nil, invalid(ErrInvalidPayment, "amount", "must not be zero")
		}
		delta = in.Amount
	default:
		return nil, invalid(ErrInvalidPayment, "type", "must be payment or adjustment")
	}

	var entry *models.AgencyTransaction
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		agency, err := tx.LockAgency(ctx, in.AgencyID)
		if err != nil {
			return err
		}
		if in.Type == models.AgencyTxPayment && in.Amount > agency.CurrentBalance {
			return invalid(ErrInvalidPayment, "amount", fmt.Sprintf("exceeds the outstanding balance of %d", agency.CurrentBalance))
		}
		agency.CurrentBalance += delta
		if err := tx.SaveAgency(ctx, agency); err != nil {
			return fmt.Errorf("save agency: %w", err)
		}
		entry = &models.AgencyTransaction{
			AgencyID:    agency.ID,
			Type:        in.Type,
			Amount:      delta,
			Description: in.Description,
		}
		return tx.CreateAgencyTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"agency_id": in.AgencyID,
		"type":      in.Type,
		"amount":    delta,
		"operator":  in.Customer.UserID,
	}).Info("agency ledger entry recorded")
	return entry, nil
}
