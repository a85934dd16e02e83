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

type clientSettingsClient interface {
	GetClientSettings(ctx context.Context) (*models.ClientSettings, error)
	UpdateClientSettings(ctx context.Context, settings models.ClientSettings) (*models.ClientSettings, error)
	GetClientSummary(ctx context.Context) (*models.ClientSummary, error)
}

// ClientHandler exposes client settings, the dashboard summary and the
// derived capability flags.
type ClientHandler struct {
	client       clientSettingsClient
	capabilities *service.CapabilityService
}

// NewClientHandler constructs handler.
func NewClientHandler(client clientSettingsClient, capabilities *service.CapabilityService) *ClientHandler {
	return &ClientHandler{client: client, capabilities: capabilities}
}

// Settings godoc
// @Summary Get client settings
// @Tags Client
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /client/settings [get]
func (h *ClientHandler) Settings(c *gin.Context) {
	settings, err := h.client.GetClientSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update client settings
// @Tags Client
// @Accept json
// @Produce json
// @Param payload body models.ClientSettings true "Settings"
// @Success 200 {object} response.Envelope
// @Router /client/settings [patch]
func (h *ClientHandler) UpdateSettings(c *gin.Context) {
	var settings models.ClientSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload"))
		return
	}
	updated, err := h.client.UpdateClientSettings(c.Request.Context(), settings)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Summary godoc
// @Summary Dashboard summary
// @Tags Client
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /client/summary [get]
func (h *ClientHandler) Summary(c *gin.Context) {
	summary, err := h.client.GetClientSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Capabilities godoc
// @Summary Session capability flags
// @Tags Client
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /capabilities [get]
func (h *ClientHandler) Capabilities(c *gin.Context) {
	caps, err := h.capabilities.Resolve(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, caps)
}

// RefreshCapabilities godoc
// @Summary Re-derive the session capability flags
// @Tags Client
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /capabilities/refresh [post]
func (h *ClientHandler) RefreshCapabilities(c *gin.Context) {
	caps, err := h.capabilities.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, caps)
}
