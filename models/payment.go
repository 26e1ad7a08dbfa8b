package models

import (
	"fmt"
	"time"
)

// Payment evidence target kinds.
const (
	TargetBooking           = "booking"
	TargetWalletTransaction = "wallet_transaction"
)

// PaymentTarget identifies the record a payment confirmation pays for.
type PaymentTarget struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id"`
}

func BookingTarget(id uint) PaymentTarget {
	return PaymentTarget{Kind: TargetBooking, ID: id}
}

func WalletTransactionTarget(id uint) PaymentTarget {
	return PaymentTarget{Kind: TargetWalletTransaction, ID: id}
}

func (t PaymentTarget) Valid() bool {
	return t.ID != 0 && (t.Kind == TargetBooking || t.Kind == TargetWalletTransaction)
}

func (t PaymentTarget) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// PaymentConfirmation is a piece of payment evidence: a gateway callback,
// an uploaded bank receipt, a wallet debit or an agency credit charge.
type PaymentConfirmation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TargetKind string `gorm:"column:target_kind;size:32;uniqueIndex:idx_payment_target_ref" json:"target_kind"`
	TargetID   uint   `gorm:"column:target_id;uniqueIndex:idx_payment_target_ref" json:"target_id"`

	Method    string `gorm:"column:method;size:20" json:"method"`
	Amount    int64  `gorm:"column:amount" json:"amount"`
	Reference string `gorm:"column:reference;size:100;uniqueIndex:idx_payment_target_ref" json:"reference"`

	// a receipt is either verified or rejected once an operator reviews it
	IsVerified  bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsRejected  bool       `gorm:"column:is_rejected;default:false" json:"is_rejected"`
	SubmittedAt time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	VerifiedAt  *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	RejectedAt  *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
}

func (p PaymentConfirmation) Target() PaymentTarget {
	return PaymentTarget{Kind: p.TargetKind, ID: p.TargetID}
}
