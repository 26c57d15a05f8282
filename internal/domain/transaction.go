package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	TransactionTypePayment TransactionType = "PAYMENT"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is an append-only ledger entry for a balance-affecting event.
// Payment entries pair 1:1 with an order; deposit entries stand alone.
// Status moves exactly once from PENDING to a terminal state and rows are
// never deleted.
type Transaction struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Type         TransactionType   `json:"type"`
	AmountCents  int64             `json:"amount_cents"`
	Status       TransactionStatus `json:"status"`
	Method       PaymentMethod     `json:"method"`
	OrderID      *int64            `json:"order_id,omitempty"`
	ProofFileKey *string           `json:"proof_file_key,omitempty"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedOn    time.Time         `json:"created_on"`
	UpdatedOn    time.Time         `json:"updated_on"`
}
