package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, request_id, payment_method, payment_status, rental_amount_cents, deposit_amount_cents, total_amount_cents, created_on, updated_on`

func (r *transactionRepository) Create(ctx context.Context, txn *domain.RentalTransaction) error {
	query := `INSERT INTO rental_transactions (` + transactionColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	txn.CreatedOn = now
	txn.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, txn.ID, txn.RequestID, txn.PaymentMethod, txn.PaymentStatus, txn.RentalAmountCents, txn.DepositAmountCents, txn.TotalAmountCents, txn.CreatedOn, txn.UpdatedOn)
	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *transactionRepository) GetByRequestID(ctx context.Context, requestID string) (*domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE request_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, requestID))
}

func (r *transactionRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.RentalTransaction, error) {
	query := `UPDATE rental_transactions SET payment_status = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *transactionRepository) scanOne(row *sql.Row) (*domain.RentalTransaction, error) {
	txn := &domain.RentalTransaction{}
	err := row.Scan(&txn.ID, &txn.RequestID, &txn.PaymentMethod, &txn.PaymentStatus, &txn.RentalAmountCents, &txn.DepositAmountCents, &txn.TotalAmountCents, &txn.CreatedOn, &txn.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}
