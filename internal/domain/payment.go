package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeBooking      PaymentType = "booking_payment"
	PaymentTypeOwnerDeposit PaymentType = "owner_deposit"
	PaymentTypeExpense      PaymentType = "expense_payment"
	PaymentTypeRefund       PaymentType = "refund"
	PaymentTypeCommission   PaymentType = "commission"
	PaymentTypeOther        PaymentType = "other"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBit          PaymentMethod = "bit"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodOther        PaymentMethod = "other"
)

type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateCancelled PaymentState = "cancelled"
	PaymentStateRefunded  PaymentState = "refunded"
)

// Payment is an immutable money movement tagged by its economic role.
// Only completed payments participate in balances and reports.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"payment_method"`
	Type        PaymentType     `json:"payment_type"`
	Status      PaymentState    `json:"status"`

	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	PayerID    *uuid.UUID `json:"payer_id,omitempty"`
	ReceiverID *uuid.UUID `json:"receiver_id,omitempty"`

	Description     string `json:"description,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Category        string `json:"category,omitempty"`

	IsForRenovation bool             `json:"is_for_renovation"`
	IsCommission    bool             `json:"is_commission"`
	CommissionRate  *decimal.Decimal `json:"commission_rate,omitempty"`

	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PaysOwner reports whether the payment credits the given owner's side of the
// ledger as booking income.
func (p *Payment) PaysOwner(ownerID uuid.UUID) bool {
	return p.Type == PaymentTypeBooking && p.ReceiverID != nil && *p.ReceiverID == ownerID
}
