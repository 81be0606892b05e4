package httpapi

import (
	"context"

	"rentmate-client-core/internal/remote"
)

type identityClient struct {
	c *Client
}

// NewIdentityService returns a whoami-backed identity resolver. Most
// sessions use the token-claims resolver instead; this one exists for
// environments where the token is opaque to the client.
func NewIdentityService(c *Client) remote.IdentityService {
	return &identityClient{c: c}
}

func (i *identityClient) GetCurrentViewerID(ctx context.Context) (string, error) {
	var out struct {
		UserID string `json:"user_id"`
	}
	if err := i.c.get(ctx, "/api/v1/auth/whoami", &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", &remote.Failure{Message: "whoami returned no user id", Code: remote.CodeUnauthorized}
	}
	return out.UserID, nil
}
