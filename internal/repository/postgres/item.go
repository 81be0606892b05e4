package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `INSERT INTO items (id, owner_id, title, price_per_day_cents, deposit_amount_cents, image_urls, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	item.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, item.ID, item.OwnerID, item.Title, item.PricePerDayCents, item.DepositAmountCents, pq.Array(item.ImageURLs), item.CreatedOn)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	item := &domain.Item{}
	query := `SELECT id, owner_id, title, price_per_day_cents, deposit_amount_cents, image_urls, created_on
	          FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.OwnerID, &item.Title, &item.PricePerDayCents, &item.DepositAmountCents, pq.Array(&item.ImageURLs), &item.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}
