package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so the function
// is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			balance_cents BIGINT NOT NULL DEFAULT 0 CHECK (balance_cents >= 0),
			verification_code TEXT,
			verification_expires_at TIMESTAMPTZ,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			account_number TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'FREE',
			rent_expires_at TIMESTAMPTZ,
			price_hours_3_cents BIGINT NOT NULL DEFAULT 0,
			price_hours_6_cents BIGINT NOT NULL DEFAULT 0,
			price_hours_12_cents BIGINT NOT NULL DEFAULT 0,
			price_hours_24_cents BIGINT NOT NULL DEFAULT 0,
			price_night_cents BIGINT NOT NULL DEFAULT 0,
			price_hourly_cents BIGINT NOT NULL DEFAULT 0,
			full_access BOOLEAN NOT NULL DEFAULT FALSE,
			mail_included BOOLEAN NOT NULL DEFAULT FALSE,
			night_discount BOOLEAN NOT NULL DEFAULT FALSE,
			ranked_ready BOOLEAN NOT NULL DEFAULT FALSE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK ((status = 'RENTED') = (rent_expires_at IS NOT NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			type TEXT NOT NULL,
			amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
			status TEXT NOT NULL DEFAULT 'PENDING',
			method TEXT NOT NULL,
			order_id BIGINT,
			proof_file_key TEXT,
			description TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}',
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			account_id BIGINT NOT NULL REFERENCES accounts(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
			status TEXT NOT NULL DEFAULT 'PENDING',
			rent_hours INT NOT NULL CHECK (rent_hours > 0),
			starts_at TIMESTAMPTZ,
			expires_at TIMESTAMPTZ,
			payment_method TEXT NOT NULL,
			transaction_id BIGINT REFERENCES transactions(id),
			verification_platform TEXT NOT NULL DEFAULT '',
			platform_username TEXT NOT NULL DEFAULT '',
			can_review BOOLEAN NOT NULL DEFAULT FALSE,
			has_review BOOLEAN NOT NULL DEFAULT FALSE,
			can_send_mail BOOLEAN NOT NULL DEFAULT TRUE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			attributes JSONB NOT NULL DEFAULT '{}',
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Check-then-act races on "one pending per user" are closed at the
		// database, not in application reads.
		`CREATE UNIQUE INDEX IF NOT EXISTS one_pending_order_per_user
			ON orders (user_id) WHERE status = 'PENDING'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS one_pending_deposit_per_user
			ON transactions (user_id) WHERE status = 'PENDING' AND type = 'DEPOSIT'`,
		`CREATE INDEX IF NOT EXISTS orders_expiry_idx ON orders (expires_at) WHERE status = 'ACTIVE'`,
		`CREATE INDEX IF NOT EXISTS accounts_expiry_idx ON accounts (rent_expires_at) WHERE status = 'RENTED'`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
