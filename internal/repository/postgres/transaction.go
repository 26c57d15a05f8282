package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, user_id, type, amount_cents, status, method, order_id,
	proof_file_key, description, metadata, created_on, updated_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	var t domain.Transaction
	var metadata []byte
	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Status, &t.Method, &t.OrderID,
		&t.ProofFileKey, &t.Description, &metadata, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if tx.Metadata == nil {
		tx.Metadata = map[string]string{}
	}
	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return err
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusPending
	}
	query := `INSERT INTO transactions (user_id, type, amount_cents, status, method, order_id,
	            proof_file_key, description, metadata)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_on, updated_on`
	err = r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Type, tx.AmountCents, tx.Status, tx.Method, tx.OrderID,
		tx.ProofFileKey, tx.Description, metadata).
		Scan(&tx.ID, &tx.CreatedOn, &tx.UpdatedOn)
	if isUniqueViolation(err, "one_pending_deposit_per_user") {
		return domain.ErrPendingDeposit
	}
	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	return t, err
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM transactions WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *t)
	}
	return txs, count, rows.Err()
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int64, to domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $2, updated_on = NOW()
	          WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, to)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionSettled
	}
	return nil
}
