package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "CASH"
	PaymentMethodBanking PaymentMethod = "BANKING"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// RentalTransaction is created server-side once the owner engages with a
// request. At most one transaction exists per request.
type RentalTransaction struct {
	ID                 string        `json:"id"`
	RequestID          string        `json:"request_id"`
	PaymentMethod      PaymentMethod `json:"payment_method"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	RentalAmountCents  int64         `json:"rental_amount_cents"`
	DepositAmountCents int64         `json:"deposit_amount_cents"`
	TotalAmountCents   int64         `json:"total_amount_cents"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}

func (t *RentalTransaction) IsPaid() bool {
	return t != nil && t.PaymentStatus == PaymentStatusPaid
}

// AwaitingBankTransfer reports whether this transaction is still waiting on
// an asynchronous banking settlement. This is the poller's start condition.
func (t *RentalTransaction) AwaitingBankTransfer() bool {
	return t != nil && t.PaymentMethod == PaymentMethodBanking && t.PaymentStatus == PaymentStatusPending
}
