package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User carries the balance the ledger settles against, plus the short-lived
// verification code the scheduler expires.
type User struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	PasswordHash          string     `json:"-"`
	Role                  Role       `json:"role"`
	BalanceCents          int64      `json:"balance_cents"`
	VerificationCode      *string    `json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedOn             time.Time  `json:"created_on"`
	UpdatedOn             time.Time  `json:"updated_on"`
}
