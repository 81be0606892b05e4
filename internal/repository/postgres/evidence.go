package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/repository"
)

type evidenceRepository struct {
	db *sql.DB
}

func NewEvidenceRepository(db *sql.DB) repository.EvidenceRepository {
	return &evidenceRepository{db: db}
}

func (r *evidenceRepository) Create(ctx context.Context, image *domain.EvidenceImage) error {
	query := `INSERT INTO evidence_images (id, transaction_id, image_type, url, created_on)
	          VALUES ($1, $2, $3, $4, $5)`
	image.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, image.ID, image.TransactionID, image.Type, image.URL, image.CreatedOn)
	return err
}

func (r *evidenceRepository) ListByTransaction(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error) {
	query := `SELECT id, transaction_id, image_type, url, created_on
	          FROM evidence_images WHERE transaction_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.EvidenceImage
	for rows.Next() {
		var img domain.EvidenceImage
		if err := rows.Scan(&img.ID, &img.TransactionID, &img.Type, &img.URL, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
