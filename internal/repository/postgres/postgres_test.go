package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func requestRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "item_id", "renter_id", "rental_start_time", "rental_end_time", "status",
		"pickup_lat", "pickup_lng", "delivery_lat", "delivery_lng", "created_on", "updated_on",
	}).AddRow("req-1", "item-1", "renter-1", nil, nil, "PENDING", 52.37, 4.89, 52.37, 4.89, now, now)
}

func transactionRows(now time.Time, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "request_id", "payment_method", "payment_status",
		"rental_amount_cents", "deposit_amount_cents", "total_amount_cents", "created_on", "updated_on",
	}).AddRow("txn-1", "req-1", "BANKING", status, 4500, 10000, 14500, now, now)
}

func TestRequestRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_requests WHERE id = \$1`).
			WithArgs("req-1").
			WillReturnRows(requestRows(now))

		req, err := repo.GetByID(context.Background(), "req-1")
		require.NoError(t, err)
		assert.Equal(t, "req-1", req.ID)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Nil(t, req.RentalStartTime)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_requests WHERE id = \$1`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)
	now := time.Now()

	t.Run("updates and rereads", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rental_requests SET status = \$1, updated_on = \$2 WHERE id = \$3`).
			WithArgs("CONFIRMED", sqlmock.AnyArg(), "req-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM rental_requests WHERE id = \$1`).
			WithArgs("req-1").
			WillReturnRows(requestRows(now))

		req, err := repo.UpdateStatus(context.Background(), "req-1", domain.RequestStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, "req-1", req.ID)
	})

	t.Run("zero rows affected is not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rental_requests SET status = \$1, updated_on = \$2 WHERE id = \$3`).
			WithArgs("CONFIRMED", sqlmock.AnyArg(), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateStatus(context.Background(), "nope", domain.RequestStatusConfirmed)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetByRequestID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_transactions WHERE request_id = \$1`).
			WithArgs("req-1").
			WillReturnRows(transactionRows(now, "PENDING"))

		txn, err := repo.GetByRequestID(context.Background(), "req-1")
		require.NoError(t, err)
		assert.Equal(t, "txn-1", txn.ID)
		assert.True(t, txn.AwaitingBankTransfer())
		assert.Equal(t, int64(14500), txn.TotalAmountCents)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_transactions WHERE request_id = \$1`).
			WithArgs("req-9").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByRequestID(context.Background(), "req-9")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_UpdatePaymentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	now := time.Now()

	mock.ExpectExec(`UPDATE rental_transactions SET payment_status = \$1, updated_on = \$2 WHERE id = \$3`).
		WithArgs("PAID", sqlmock.AnyArg(), "txn-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM rental_transactions WHERE id = \$1`).
		WithArgs("txn-1").
		WillReturnRows(transactionRows(now, "PAID"))

	txn, err := repo.UpdatePaymentStatus(context.Background(), "txn-1", domain.PaymentStatusPaid)
	require.NoError(t, err)
	assert.True(t, txn.IsPaid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectExec(`INSERT INTO rental_transactions`).
		WithArgs("txn-1", "req-1", "CASH", "PENDING", int64(4500), int64(10000), int64(14500), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.RentalTransaction{
		ID:                 "txn-1",
		RequestID:          "req-1",
		PaymentMethod:      domain.PaymentMethodCash,
		PaymentStatus:      domain.PaymentStatusPending,
		RentalAmountCents:  4500,
		DepositAmountCents: 10000,
		TotalAmountCents:   14500,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvidenceRepository_ListByTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvidenceRepository(db)
	now := time.Now()

	t.Run("returns images in upload order", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "transaction_id", "image_type", "url", "created_on"}).
			AddRow("img-1", "txn-1", "PICKUP", "/media/img-1.jpg", now).
			AddRow("img-2", "txn-1", "RETURN", "/media/img-2.jpg", now.Add(time.Hour))
		mock.ExpectQuery(`SELECT (.+) FROM evidence_images WHERE transaction_id = \$1 ORDER BY created_on ASC`).
			WithArgs("txn-1").
			WillReturnRows(rows)

		images, err := repo.ListByTransaction(context.Background(), "txn-1")
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, domain.ImageTypePickup, images[0].Type)
		assert.Equal(t, domain.ImageTypeReturn, images[1].Type)
	})

	t.Run("no images is an empty list, not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM evidence_images WHERE transaction_id = \$1`).
			WithArgs("txn-2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "image_type", "url", "created_on"}))

		images, err := repo.ListByTransaction(context.Background(), "txn-2")
		require.NoError(t, err)
		assert.Empty(t, images)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "price_per_day_cents", "deposit_amount_cents", "image_urls", "created_on"}).
		AddRow("item-1", "owner-1", "Cargo bike", int64(4500), int64(10000), "{https://cdn.example.com/bike.jpg}", now)
	mock.ExpectQuery(`SELECT (.+) FROM items WHERE id = \$1`).
		WithArgs("item-1").
		WillReturnRows(rows)

	item, err := repo.GetByID(context.Background(), "item-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", item.OwnerID)
	assert.Equal(t, []string{"https://cdn.example.com/bike.jpg"}, item.ImageURLs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
