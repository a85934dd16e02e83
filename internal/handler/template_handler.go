package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type templateClient interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	CreateTemplate(ctx context.Context, input models.TemplateInput) (*models.Template, error)
}

// TemplateHandler manages content-template endpoints.
type TemplateHandler struct {
	client templateClient
}

// NewTemplateHandler constructs handler.
func NewTemplateHandler(client templateClient) *TemplateHandler {
	return &TemplateHandler{client: client}
}

// List godoc
// @Summary List content templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.client.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates)
}

// Create godoc
// @Summary Create a content template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body models.TemplateInput true "Template"
// @Success 201 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var input models.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload"))
		return
	}
	template, err := h.client.CreateTemplate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, template)
}
