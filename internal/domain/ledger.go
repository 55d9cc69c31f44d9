package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "DEPOSIT"
	TransactionTypeSettlementCharge TransactionType = "SETTLEMENT_CHARGE"
	TransactionTypeRefund           TransactionType = "REFUND"
)

// LedgerTransaction records a single money movement against a rental.
// Amount is positive when the customer pays us and negative when we pay
// the customer (refunds).
type LedgerTransaction struct {
	ID          int32           `json:"id"`
	CustomerID  int32           `json:"customer_id"`
	RentalID    *int32          `json:"rental_id,omitempty"`
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
}

// LedgerSummary aggregates a customer's money movements.
type LedgerSummary struct {
	TotalPaid     int64 `json:"total_paid"`
	TotalRefunded int64 `json:"total_refunded"`
	Transactions  int32 `json:"transactions"`
}
