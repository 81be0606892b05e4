// Package remote defines the collaborator contracts the lifecycle engine
// consumes: the marketplace's request, transaction and item services plus
// the identity provider. Implementations live in remote/httpapi and in the
// identity package.
package remote

import (
	"context"
	"errors"

	"rentmate-client-core/internal/domain"
)

// Failure is the typed error every collaborator call can return. Retryable
// marks transient conditions (timeouts, 5xx); Code is an optional machine
// error code such as NOT_FOUND.
type Failure struct {
	Message   string
	Retryable bool
	Code      string
}

func (f *Failure) Error() string {
	return f.Message
}

const (
	CodeNotFound     = "NOT_FOUND"
	CodeNetwork      = "NETWORK"
	CodeServerError  = "SERVER_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
)

// IsRetryable reports whether err is a collaborator failure worth retrying.
func IsRetryable(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Retryable
}

// IsNotFound reports whether err is a collaborator "no such record" failure.
func IsNotFound(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Code == CodeNotFound
}

// EvidenceFile is one image payload handed to the upload collaborator.
type EvidenceFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type RequestService interface {
	GetRequest(ctx context.Context, id string) (*domain.RentalRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error)
}

type TransactionService interface {
	GetTransactionByRequest(ctx context.Context, requestID string) (*domain.RentalTransaction, error)
	ConfirmPayment(ctx context.Context, transactionID string, status domain.PaymentStatus) (*domain.RentalTransaction, error)
	GetEvidenceImages(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error)
	UploadEvidenceImages(ctx context.Context, transactionID string, imageType domain.ImageType, files []EvidenceFile) ([]domain.EvidenceImage, error)
}

type ItemService interface {
	GetItem(ctx context.Context, id string) (*domain.Item, error)
}

type IdentityService interface {
	GetCurrentViewerID(ctx context.Context) (string, error)
}
