package postgres

import (
	"database/sql"

	"rentmate-client-core/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RequestRepository
	repository.TransactionRepository
	repository.EvidenceRepository
	repository.ItemRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RequestRepository:     NewRequestRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		EvidenceRepository:    NewEvidenceRepository(db),
		ItemRepository:        NewItemRepository(db),
	}
}
