package httpapi

import (
	"context"
	"fmt"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/remote"
)

type requestClient struct {
	c *Client
}

// NewRequestService returns the REST implementation of the request
// collaborator.
func NewRequestService(c *Client) remote.RequestService {
	return &requestClient{c: c}
}

func (r *requestClient) GetRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	var req domain.RentalRequest
	if err := r.c.get(ctx, fmt.Sprintf("/api/v1/requests/%s", id), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestClient) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.RentalRequest, error) {
	body := map[string]any{"status": status}
	var req domain.RentalRequest
	if err := r.c.do(ctx, "PATCH", fmt.Sprintf("/api/v1/requests/%s/status", id), body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
