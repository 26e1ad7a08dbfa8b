package memory

import (
	"context"
	"fmt"

	"hotel-reservation/models"
	"hotel-reservation/repository"
)

func (v *view) CreatePaymentConfirmation(_ context.Context, pc *models.PaymentConfirmation) error {
	return v.write(func(d *dataset) error {
		for _, p := range d.payments {
			if p.TargetKind == pc.TargetKind && p.TargetID == pc.TargetID && p.Reference == pc.Reference {
				return fmt.Errorf("create payment confirmation: %w", repository.ErrDuplicate)
			}
		}
		pc.ID = v.s.nextID()
		d.payments[pc.ID] = *pc
		return nil
	})
}

func (v *view) GetPaymentConfirmation(_ context.Context, id uint) (*models.PaymentConfirmation, error) {
	var out *models.PaymentConfirmation
	err := v.read(func(d *dataset) error {
		p, ok := d.payments[id]
		if !ok {
			return notFound("get payment confirmation")
		}
		out = &p
		return nil
	})
	return out, err
}

func (v *view) LockPaymentConfirmation(ctx context.Context, id uint) (*models.PaymentConfirmation, error) {
	if !v.inTx {
		return nil, ErrNoTransaction
	}
	return v.GetPaymentConfirmation(ctx, id)
}

func (v *view) SavePaymentConfirmation(_ context.Context, pc *models.PaymentConfirmation) error {
	return v.write(func(d *dataset) error {
		cur, ok := d.payments[pc.ID]
		if !ok {
			return notFound("save payment confirmation")
		}
		cur.Amount = pc.Amount
		cur.IsVerified = pc.IsVerified
		cur.VerifiedAt = pc.VerifiedAt
		cur.IsRejected = pc.IsRejected
		cur.RejectedAt = pc.RejectedAt
		d.payments[pc.ID] = cur
		return nil
	})
}

func (v *view) FindPaymentConfirmation(_ context.Context, target models.PaymentTarget, reference string) (*models.PaymentConfirmation, error) {
	var out *models.PaymentConfirmation
	err := v.read(func(d *dataset) error {
		for _, p := range d.payments {
			if p.TargetKind == target.Kind && p.TargetID == target.ID && p.Reference == reference {
				p := p
				out = &p
				return nil
			}
		}
		return notFound("find payment confirmation")
	})
	return out, err
}

func (v *view) ListPaymentConfirmations(_ context.Context, target models.PaymentTarget) ([]models.PaymentConfirmation, error) {
	var out []models.PaymentConfirmation
	err := v.read(func(d *dataset) error {
		out = values(d.payments, func(p models.PaymentConfirmation) bool {
			return p.TargetKind == target.Kind && p.TargetID == target.ID
		})
		return nil
	})
	return out, err
}

func (v *view) GetWalletByUser(_ context.Context, userID uint) (*models.Wallet, error) {
	var out *models.Wallet
	err := v.read(func(d *dataset) error {
		for _, w := range d.wallets {
			if w.UserID == userID {
				w := w
				out = &w
				return nil
			}
		}
		return notFound("get wallet")
	})
	return out, err
}

func (v *view) CreateWallet(_ context.Context, wallet *models.Wallet) error {
	return v.write(func(d *dataset) error {
		for _, w := range d.wallets {
			if w.UserID == wallet.UserID {
				return fmt.Errorf("create wallet: %w", repository.ErrDuplicate)
			}
		}
		wallet.ID = v.s.nextID()
		d.wallets[wallet.ID] = *wallet
		return nil
	})
}

func (v *view) LockWallet(_ context.Context, id uint) (*models.Wallet, error) {
	var out *models.Wallet
	err := v.lock(func(d *dataset) error {
		w, ok := d.wallets[id]
		if !ok {
			return notFound("lock wallet")
		}
		out = &w
		return nil
	})
	return out, err
}

func (v *view) SaveWallet(_ context.Context, wallet *models.Wallet) error {
	return v.write(func(d *dataset) error {
		cur, ok := d.wallets[wallet.ID]
		if !ok {
			return notFound("save wallet")
		}
		cur.Balance = wallet.Balance
		d.wallets[wallet.ID] = cur
		return nil
	})
}

func (v *view) CreateWalletTransaction(_ context.Context, wt *models.WalletTransaction) error {
	return v.write(func(d *dataset) error {
		if _, ok := d.wallets[wt.WalletID]; !ok {
			return notFound("create wallet transaction")
		}
		wt.ID = v.s.nextID()
		d.walletTxs[wt.ID] = *wt
		return nil
	})
}

func (v *view) GetWalletTransaction(_ context.Context, id uint) (*models.WalletTransaction, error) {
	var out *models.WalletTransaction
	err := v.read(func(d *dataset) error {
		wt, ok := d.walletTxs[id]
		if !ok {
			return notFound("get wallet transaction")
		}
		out = &wt
		return nil
	})
	return out, err
}

func (v *view) LockWalletTransaction(ctx context.Context, id uint) (*models.WalletTransaction, error) {
	if !v.inTx {
		return nil, ErrNoTransaction
	}
	return v.GetWalletTransaction(ctx, id)
}

func (v *view) SaveWalletTransaction(_ context.Context, wt *models.WalletTransaction) error {
	return v.write(func(d *dataset) error {
		cur, ok := d.walletTxs[wt.ID]
		if !ok {
			return notFound("save wallet transaction")
		}
		cur.Status = wt.Status
		d.walletTxs[wt.ID] = cur
		return nil
	})
}

func (v *view) ListWalletTransactions(_ context.Context, walletID uint) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	err := v.read(func(d *dataset) error {
		out = values(d.walletTxs, func(wt models.WalletTransaction) bool { return wt.WalletID == walletID })
		return nil
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, err
}
