package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/backend"
	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/pkg/config"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type vkClient interface {
	ListVkIntegrations(ctx context.Context) ([]models.VkIntegration, error)
	DeleteVkIntegration(ctx context.Context, id int64) error
	PostVkWithPhotos(ctx context.Context, message string, photos []backend.VkPhoto) (*models.VkPhotoPostResult, error)
	VkConnectURL(ctx context.Context) (string, error)
}

// VkHandler manages the VK integration surface.
type VkHandler struct {
	client vkClient
	cfg    config.VKConfig
}

// NewVkHandler constructs handler.
func NewVkHandler(client vkClient, cfg config.VKConfig) *VkHandler {
	return &VkHandler{client: client, cfg: cfg}
}

// ListIntegrations godoc
// @Summary List VK integrations
// @Tags VK
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vk/integrations [get]
func (h *VkHandler) ListIntegrations(c *gin.Context) {
	integrations, err := h.client.ListVkIntegrations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, integrations)
}

// DeleteIntegration godoc
// @Summary Disconnect a VK integration
// @Tags VK
// @Param id path int true "Integration ID"
// @Success 204
// @Router /vk/integrations/{id} [delete]
func (h *VkHandler) DeleteIntegration(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DeleteVkIntegration(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PostWithPhotos godoc
// @Summary Publish a VK photo post
// @Tags VK
// @Accept multipart/form-data
// @Produce json
// @Param message formData string true "Post message"
// @Param photos formData file true "Photos"
// @Success 201 {object} response.Envelope
// @Router /vk/post-with-photos [post]
func (h *VkHandler) PostWithPhotos(c *gin.Context) {
	if h.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid multipart upload"))
		return
	}

	message := c.PostForm("message")
	files := form.File["photos"]
	if len(files) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "at least one photo is required"))
		return
	}

	allowed := make(map[string]struct{}, len(h.cfg.AllowedPhotoMIME))
	for _, m := range h.cfg.AllowedPhotoMIME {
		allowed[m] = struct{}{}
	}

	photos := make([]backend.VkPhoto, 0, len(files))
	opened := make([]interface{ Close() error }, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if len(allowed) > 0 {
			if _, ok := allowed[contentType]; !ok {
				response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported photo type "+contentType))
				return
			}
		}

		file, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open uploaded photo"))
			return
		}
		opened = append(opened, file)
		photos = append(photos, backend.VkPhoto{
			Name:        header.Filename,
			ContentType: contentType,
			Reader:      file,
		})
	}

	result, err := h.client.PostVkWithPhotos(c.Request.Context(), message, photos)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Connect godoc
// @Summary VK OAuth connect redirect target
// @Tags VK
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vk/connect [get]
func (h *VkHandler) Connect(c *gin.Context) {
	url, err := h.client.VkConnectURL(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url})
}
