package repository

import (
	"context"

	"hotel-reservation/models"
)

func (s *GormStore) CreatePaymentConfirmation(ctx context.Context, pc *models.PaymentConfirmation) error {
	return translate(s.conn(ctx).Create(pc).Error, "create payment confirmation")
}

func (s *GormStore) GetPaymentConfirmation(ctx context.Context, id uint) (*models.PaymentConfirmation, error) {
	var pc models.PaymentConfirmation
	if err := s.conn(ctx).First(&pc, id).Error; err != nil {
		return nil, translate(err, "get payment confirmation")
	}
	return &pc, nil
}

func (s *GormStore) LockPaymentConfirmation(ctx context.Context, id uint) (*models.PaymentConfirmation, error) {
	var pc models.PaymentConfirmation
	if err := s.forUpdate(ctx).First(&pc, id).Error; err != nil {
		return nil, translate(err, "lock payment confirmation")
	}
	return &pc, nil
}

func (s *GormStore) SavePaymentConfirmation(ctx context.Context, pc *models.PaymentConfirmation) error {
	err := s.conn(ctx).Model(pc).
		Select("amount", "is_verified", "verified_at", "is_rejected", "rejected_at").
		Updates(pc).Error
	return translate(err, "save payment confirmation")
}

func (s *GormStore) FindPaymentConfirmation(ctx context.Context, target models.PaymentTarget, reference string) (*models.PaymentConfirmation, error) {
	var pc models.PaymentConfirmation
	err := s.conn(ctx).
		Where("target_kind = ? AND target_id = ? AND reference = ?", target.Kind, target.ID, reference).
		First(&pc).Error
	if err != nil {
		return nil, translate(err, "find payment confirmation")
	}
	return &pc, nil
}

func (s *GormStore) ListPaymentConfirmations(ctx context.Context, target models.PaymentTarget) ([]models.PaymentConfirmation, error) {
	var list []models.PaymentConfirmation
	err := s.conn(ctx).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list payment confirmations")
	}
	return list, nil
}

func (s *GormStore) GetWalletByUser(ctx context.Context, userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, translate(err, "get wallet")
	}
	return &w, nil
}

func (s *GormStore) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	return translate(s.conn(ctx).Create(wallet).Error, "create wallet")
}

func (s *GormStore) LockWallet(ctx context.Context, id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.forUpdate(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err, "lock wallet")
	}
	return &w, nil
}

func (s *GormStore) SaveWallet(ctx context.Context, wallet *models.Wallet) error {
	err := s.conn(ctx).Model(wallet).Select("balance", "updated_at").Updates(wallet).Error
	return translate(err, "save wallet")
}

func (s *GormStore) CreateWalletTransaction(ctx context.Context, wt *models.WalletTransaction) error {
	return translate(s.conn(ctx).Create(wt).Error, "create wallet transaction")
}

func (s *GormStore) GetWalletTransaction(ctx context.Context, id uint) (*models.WalletTransaction, error) {
	var wt models.WalletTransaction
	if err := s.conn(ctx).First(&wt, id).Error; err != nil {
		return nil, translate(err, "get wallet transaction")
	}
	return &wt, nil
}

func (s *GormStore) LockWalletTransaction(ctx context.Context, id uint) (*models.WalletTransaction, error) {
	var wt models.WalletTransaction
	if err := s.forUpdate(ctx).First(&wt, id).Error; err != nil {
		return nil, translate(err, "lock wallet transaction")
	}
	return &wt, nil
}

func (s *GormStore) SaveWalletTransaction(ctx context.Context, wt *models.WalletTransaction) error {
	err := s.conn(ctx).Model(wt).Select("status").Updates(wt).Error
	return translate(err, "save wallet transaction")
}

func (s *GormStore) ListWalletTransactions(ctx context.Context, walletID uint) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	if err := s.conn(ctx).Where("wallet_id = ?", walletID).Order("id DESC").Find(&list).Error; err != nil {
		return nil, translate(err, "list wallet transactions")
	}
	return list, nil
}
