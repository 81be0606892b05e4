package httpapi

import (
	"context"
	"fmt"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/remote"
)

type itemClient struct {
	c *Client
}

// NewItemService returns the REST implementation of the item collaborator.
func NewItemService(c *Client) remote.ItemService {
	return &itemClient{c: c}
}

func (i *itemClient) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	if err := i.c.get(ctx, fmt.Sprintf("/api/v1/items/%s", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}
