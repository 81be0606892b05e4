package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (id, item_id, renter_id, rental_start_time, rental_end_time, status, pickup_lat, pickup_lng, delivery_lat, delivery_lng, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	req.CreatedOn = now
	req.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, req.ID, req.ItemID, req.RenterID, req.RentalStartTime, req.RentalEndTime, req.Status, req.PickupLat, req.PickupLng, req.DeliveryLat, req.DeliveryLng, req.CreatedOn, req.UpdatedOn)
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	query := `SELECT id, item_id, renter_id, rental_start_time, rental_end_time, status, pickup_lat, pickup_lng, delivery_lat, delivery_lng, created_on, updated_on
	          FROM rental_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.ItemID, &req.RenterID, &req.RentalStartTime, &req.RentalEndTime, &req.Status, &req.PickupLat, &req.PickupLng, &req.DeliveryLat, &req.DeliveryLng, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error) {
	query := `UPDATE rental_requests SET status = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
