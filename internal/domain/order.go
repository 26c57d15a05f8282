package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusVerified  OrderStatus = "VERIFIED"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type PaymentMethod string

const (
	PaymentMethodBalance      PaymentMethod = "BALANCE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCrypto       PaymentMethod = "CRYPTO"
)

// Instant reports whether the method settles synchronously against the
// user's balance at order creation.
func (m PaymentMethod) Instant() bool {
	return m == PaymentMethodBalance
}

// Order is a single rental request moving through the fixed lifecycle
// PENDING -> PAID -> VERIFIED -> ACTIVE -> COMPLETED, with CANCELLED as the
// second exit state. StartsAt/ExpiresAt are set exactly once, on activation.
type Order struct {
	ID                   int64         `json:"id"`
	UserID               int64         `json:"user_id"`
	AccountID            int64         `json:"account_id"`
	AmountCents          int64         `json:"amount_cents"`
	Status               OrderStatus   `json:"status"`
	RentHours            int           `json:"rent_hours"`
	StartsAt             *time.Time    `json:"starts_at,omitempty"`
	ExpiresAt            *time.Time    `json:"expires_at,omitempty"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	TransactionID        *int64        `json:"transaction_id,omitempty"`
	VerificationPlatform string        `json:"verification_platform"`
	PlatformUsername     string        `json:"platform_username"`
	CanReview            bool          `json:"can_review"`
	HasReview            bool          `json:"has_review"`
	CanSendMail          bool          `json:"can_send_mail"`
	CreatedOn            time.Time     `json:"created_on"`
	UpdatedOn            time.Time     `json:"updated_on"`
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status    *OrderStatus
	UserID    *int64
	AccountID *int64
}
