package domain

import "time"

type AccountStatus string

const (
	AccountStatusFree        AccountStatus = "FREE"
	AccountStatusRented      AccountStatus = "RENTED"
	AccountStatusUnavailable AccountStatus = "UNAVAILABLE"
	AccountStatusDeleted     AccountStatus = "DELETED"
)

// Account is a rentable game account. Its availability status is the source
// of truth for occupancy, independent of any particular order.
// Invariant: RentExpiresAt is non-nil iff Status == RENTED.
type Account struct {
	ID            int64         `json:"id"`
	AccountNumber string        `json:"account_number"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        AccountStatus `json:"status"`
	RentExpiresAt *time.Time    `json:"rent_expires_at,omitempty"`
	Price         PriceTable    `json:"price"`
	Features      Features      `json:"features"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}

// Features are the boolean characteristics an account can be filtered by.
// List filters combine selected flags with logical AND.
type Features struct {
	FullAccess    bool `json:"full_access"`
	MailIncluded  bool `json:"mail_included"`
	NightDiscount bool `json:"night_discount"`
	RankedReady   bool `json:"ranked_ready"`
}

// AccountFilter selects accounts for listing. Nil flag means "don't care".
// Soft-deleted accounts are always excluded.
type AccountFilter struct {
	Status        *AccountStatus
	FullAccess    *bool
	MailIncluded  *bool
	NightDiscount *bool
	RankedReady   *bool
}
