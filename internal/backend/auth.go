package backend

import (
	"context"

	"github.com/contentfactory/panel-api/internal/models"
)

// TelegramLogin forwards the Telegram widget payload to the backend, which
// verifies it and sets the session cookies on this client's jar.
func (c *Client) TelegramLogin(ctx context.Context, login models.TelegramLogin) (*models.SessionInfo, error) {
	var session models.SessionInfo
	if err := c.post(ctx, "/api/auth/telegram", login, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DevLogin signs in via the backend's development bypass.
func (c *Client) DevLogin(ctx context.Context) (*models.SessionInfo, error) {
	var session models.SessionInfo
	if err := c.put(ctx, "/api/auth/telegram", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.delete(ctx, "/api/auth/telegram")
}

// Refresh forces a token refresh outside the automatic 401 path.
func (c *Client) Refresh(ctx context.Context) error {
	return c.refreshSession(ctx)
}
