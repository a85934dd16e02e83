package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type trendClient interface {
	ListTrends(ctx context.Context) ([]models.TrendItem, error)
	CreateTopicFromTrend(ctx context.Context, id int64) (*models.Topic, error)
	DismissTrend(ctx context.Context, id int64) error
}

// TrendHandler manages the trending-subjects feed.
type TrendHandler struct {
	client trendClient
}

// NewTrendHandler constructs handler.
func NewTrendHandler(client trendClient) *TrendHandler {
	return &TrendHandler{client: client}
}

// List godoc
// @Summary List trends
// @Tags Trends
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /trends [get]
func (h *TrendHandler) List(c *gin.Context) {
	trends, err := h.client.ListTrends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trends)
}

// CreateTopic godoc
// @Summary Promote a trend into a topic
// @Tags Trends
// @Produce json
// @Param id path int true "Trend ID"
// @Success 201 {object} response.Envelope
// @Router /trends/{id}/create-topic [post]
func (h *TrendHandler) CreateTopic(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	topic, err := h.client.CreateTopicFromTrend(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}

// Dismiss godoc
// @Summary Dismiss a trend
// @Tags Trends
// @Param id path int true "Trend ID"
// @Success 204
// @Router /trends/{id}/dismiss [post]
func (h *TrendHandler) Dismiss(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DismissTrend(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type seoClient interface {
	ListSEOKeywordSets(ctx context.Context) ([]models.SEOKeywordSet, error)
	CreateSEOKeywordSet(ctx context.Context, input models.SEOKeywordSetInput) (*models.SEOKeywordSet, error)
	GenerateSEOKeywordSet(ctx context.Context, req models.GenerateSEORequest) (*models.SEOKeywordSet, error)
}

// SEOHandler manages keyword-set endpoints.
type SEOHandler struct {
	client seoClient
}

// NewSEOHandler constructs handler.
func NewSEOHandler(client seoClient) *SEOHandler {
	return &SEOHandler{client: client}
}

// List godoc
// @Summary List keyword sets
// @Tags SEO
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /seo-keywords [get]
func (h *SEOHandler) List(c *gin.Context) {
	sets, err := h.client.ListSEOKeywordSets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sets)
}

// Create godoc
// @Summary Create a keyword set
// @Tags SEO
// @Accept json
// @Produce json
// @Param payload body models.SEOKeywordSetInput true "Keyword set"
// @Success 201 {object} response.Envelope
// @Router /seo-keywords [post]
func (h *SEOHandler) Create(c *gin.Context) {
	var input models.SEOKeywordSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid keyword set payload"))
		return
	}
	set, err := h.client.CreateSEOKeywordSet(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, set)
}

// Generate godoc
// @Summary Generate a keyword set
// @Tags SEO
// @Accept json
// @Produce json
// @Param payload body models.GenerateSEORequest true "Generation request"
// @Success 200 {object} response.Envelope
// @Router /seo-keywords/generate [post]
func (h *SEOHandler) Generate(c *gin.Context) {
	var req models.GenerateSEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload"))
		return
	}
	set, err := h.client.GenerateSEOKeywordSet(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set)
}
