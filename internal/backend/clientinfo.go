package backend

import (
	"context"

	"github.com/contentfactory/panel-api/internal/models"
)

// GetClientSettings returns the editable client settings.
func (c *Client) GetClientSettings(ctx context.Context) (*models.ClientSettings, error) {
	var settings models.ClientSettings
	if err := c.get(ctx, "/client/settings/", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateClientSettings partially updates the client settings.
func (c *Client) UpdateClientSettings(ctx context.Context, settings models.ClientSettings) (*models.ClientSettings, error) {
	var updated models.ClientSettings
	if err := c.patch(ctx, "/client/settings/", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetClientSummary returns the dashboard summary, including the client record
// capability flags derive from.
func (c *Client) GetClientSummary(ctx context.Context) (*models.ClientSummary, error) {
	var summary models.ClientSummary
	if err := c.get(ctx, "/client/summary/", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
