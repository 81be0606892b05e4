package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentmate-client-core/internal/domain"
)

// MockRequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.RentalTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByRequestID(ctx context.Context, requestID string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}

// MockEvidenceRepository
type MockEvidenceRepository struct {
	mock.Mock
}

func (m *MockEvidenceRepository) Create(ctx context.Context, image *domain.EvidenceImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockEvidenceRepository) ListByTransaction(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvidenceImage), args.Error(1)
}

// MockItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
