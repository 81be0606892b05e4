package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/remote"
)

type transactionClient struct {
	c *Client
}

// NewTransactionService returns the REST implementation of the transaction
// and evidence collaborator.
func NewTransactionService(c *Client) remote.TransactionService {
	return &transactionClient{c: c}
}

func (t *transactionClient) GetTransactionByRequest(ctx context.Context, requestID string) (*domain.RentalTransaction, error) {
	var txn domain.RentalTransaction
	if err := t.c.get(ctx, fmt.Sprintf("/api/v1/requests/%s/transaction", requestID), &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (t *transactionClient) ConfirmPayment(ctx context.Context, transactionID string, status domain.PaymentStatus) (*domain.RentalTransaction, error) {
	body := map[string]any{"payment_status": status}
	var txn domain.RentalTransaction
	if err := t.c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/payment", transactionID), body, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (t *transactionClient) GetEvidenceImages(ctx context.Context, transactionID string) ([]domain.EvidenceImage, error) {
	var images []domain.EvidenceImage
	if err := t.c.get(ctx, fmt.Sprintf("/api/v1/transactions/%s/images", transactionID), &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (t *transactionClient) UploadEvidenceImages(ctx context.Context, transactionID string, imageType domain.ImageType, files []remote.EvidenceFile) ([]domain.EvidenceImage, error) {
	var images []domain.EvidenceImage
	path := fmt.Sprintf("/api/v1/transactions/%s/images", transactionID)
	if err := t.c.upload(ctx, path, string(imageType), files, &images); err != nil {
		return nil, err
	}
	return images, nil
}
