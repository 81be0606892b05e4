// Package repository defines the storage contracts behind the stub
// marketplace server. The lifecycle engine itself never touches these; it
// consumes the HTTP API the stub serves on top of them.
package repository

import (
	"context"
	"errors"

	"rentmate-client-core/internal/domain"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

type RequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id string) (*domain.RentalRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.RentalTransaction) error
	GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error)
	GetByRequestID(ctx context.Context, requestID string) (*domain.RentalTransaction, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.RentalTransaction, error)
}

type EvidenceRepository interface {
	Create(ctx context.Context, image *domain.EvidenceImage) error
	ListByTransaction(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
}
