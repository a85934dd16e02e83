package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type authClient interface {
	TelegramLogin(ctx context.Context, login models.TelegramLogin) (*models.SessionInfo, error)
	DevLogin(ctx context.Context) (*models.SessionInfo, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// AuthHandler forwards session operations to the backend. The backend owns
// verification; the gateway only relays the widget payloads and clears
// derived session state on logout.
type AuthHandler struct {
	client       authClient
	capabilities *service.CapabilityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(client authClient, capabilities *service.CapabilityService) *AuthHandler {
	return &AuthHandler{client: client, capabilities: capabilities}
}

// Login godoc
// @Summary Telegram widget login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TelegramLogin true "Widget payload"
// @Success 200 {object} response.Envelope
// @Router /auth/telegram [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var login models.TelegramLogin
	if err := c.ShouldBindJSON(&login); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload"))
		return
	}

	session, err := h.client.TelegramLogin(c.Request.Context(), login)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A new session means new role flags.
	_ = h.capabilities.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, session)
}

// DevLogin godoc
// @Summary Development login bypass
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/telegram [put]
func (h *AuthHandler) DevLogin(c *gin.Context) {
	session, err := h.client.DevLogin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	_ = h.capabilities.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, session)
}

// Logout godoc
// @Summary Terminate the session
// @Tags Auth
// @Success 204
// @Router /auth/telegram [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.client.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	_ = h.capabilities.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// Refresh godoc
// @Summary Force a token refresh
// @Tags Auth
// @Success 204
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	if err := h.client.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
