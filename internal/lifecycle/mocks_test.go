package lifecycle_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/remote"
)

// MockRequestService
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) GetRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

func (m *MockRequestService) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

// MockTransactionService
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByRequest(ctx context.Context, requestID string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}

func (m *MockTransactionService) ConfirmPayment(ctx context.Context, transactionID string, status domain.PaymentStatus) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, transactionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}

func (m *MockTransactionService) GetEvidenceImages(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvidenceImage), args.Error(1)
}

func (m *MockTransactionService) UploadEvidenceImages(ctx context.Context, transactionID string, imageType domain.ImageType, files []remote.EvidenceFile) ([]domain.EvidenceImage, error) {
	args := m.Called(ctx, transactionID, imageType, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvidenceImage), args.Error(1)
}

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockIdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) GetCurrentViewerID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
