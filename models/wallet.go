package models

import "time"

type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	Balance   int64     `gorm:"column:balance;default:0" json:"balance"`
}

const (
	WalletDeposit = "deposit"
	WalletPayment = "payment"
	WalletRefund  = "refund"

	WalletTxPending   = "pending"
	WalletTxCompleted = "completed"
	WalletTxFailed    = "failed"
)

type WalletTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	WalletID  uint   `gorm:"index;column:wallet_id" json:"wallet_id"`
	BookingID *uint  `gorm:"column:booking_id" json:"booking_id,omitempty"`
	Type      string `gorm:"column:type;size:20" json:"type"`
	Amount    int64  `gorm:"column:amount" json:"amount"`
	Status    string `gorm:"column:status;size:20;default:pending" json:"status"`
	Reference string `gorm:"column:reference;size:100" json:"reference,omitempty"`
}
