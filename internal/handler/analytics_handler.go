package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

// AnalyticsHandler exposes channel-analysis endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// List godoc
// @Summary List channel analyses
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /channel-analyses [get]
func (h *AnalyticsHandler) List(c *gin.Context) {
	snapshot, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}

// Get godoc
// @Summary Get one channel analysis
// @Tags Analytics
// @Produce json
// @Param id path int true "Analysis ID"
// @Success 200 {object} response.Envelope
// @Router /channel-analyses/{id} [get]
func (h *AnalyticsHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	analysis, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis)
}

// Start godoc
// @Summary Start a channel analysis
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body models.ChannelAnalysisRequest true "Channel"
// @Success 201 {object} response.Envelope
// @Router /channel-analyses [post]
func (h *AnalyticsHandler) Start(c *gin.Context) {
	var req models.ChannelAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid analysis payload"))
		return
	}
	analysis, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, analysis)
}

// Validate godoc
// @Summary Validate a channel name
// @Tags Analytics
// @Produce json
// @Param channel query string true "Channel name"
// @Success 200 {object} response.Envelope
// @Router /channel-analyses/validate [get]
func (h *AnalyticsHandler) Validate(c *gin.Context) {
	validation, err := h.service.Validate(c.Request.Context(), c.Query("channel"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, validation)
}

// MergeAudience godoc
// @Summary Merge the analysis audience into the client profile
// @Tags Analytics
// @Param id path int true "Analysis ID"
// @Success 204
// @Router /channel-analyses/{id}/merge-audience [post]
func (h *AnalyticsHandler) MergeAudience(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.MergeAudience(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
