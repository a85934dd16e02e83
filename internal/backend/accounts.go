package backend

import (
	"context"
	"fmt"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListSocialAccounts returns connected publishing destinations.
func (c *Client) ListSocialAccounts(ctx context.Context) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	if err := c.get(ctx, "/social-accounts/", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateSocialAccount attaches a publishing destination.
func (c *Client) CreateSocialAccount(ctx context.Context, input models.SocialAccountInput) (*models.SocialAccount, error) {
	var account models.SocialAccount
	if err := c.post(ctx, "/social-accounts/", input, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteSocialAccount detaches a publishing destination.
func (c *Client) DeleteSocialAccount(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/social-accounts/%d/", id))
}
