package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type postClient interface {
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, input models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	GeneratePostImage(ctx context.Context, id int64) (*models.Post, error)
	GeneratePostVideo(ctx context.Context, id int64) (*models.Post, error)
	RegeneratePostText(ctx context.Context, id int64) (*models.Post, error)
	QuickPublishPost(ctx context.Context, id int64) (*models.Post, error)
}

// PostHandler manages post endpoints.
type PostHandler struct {
	client       postClient
	capabilities *service.CapabilityService
}

// NewPostHandler constructs handler.
func NewPostHandler(client postClient, capabilities *service.CapabilityService) *PostHandler {
	return &PostHandler{client: client, capabilities: capabilities}
}

// List godoc
// @Summary List posts
// @Tags Posts
// @Produce json
// @Param topicId query int false "Filter by topic"
// @Param status query string false "Filter by status"
// @Param platform query string false "Filter by platform"
// @Param search query string false "Search in title/text"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var filter models.PostFilter
	if raw := c.Query("topicId"); raw != "" {
		if topicID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.TopicID = &topicID
		}
	}
	filter.Status = models.PostStatus(c.Query("status"))
	filter.Platform = c.Query("platform")
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	posts, err := h.client.ListPosts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// Get godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.client.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body models.PostInput true "Post"
// @Success 201 {object} response.Envelope
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var input models.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload"))
		return
	}
	post, err := h.client.CreatePost(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Update godoc
// @Summary Update a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param payload body models.PostInput true "Post"
// @Success 200 {object} response.Envelope
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input models.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload"))
		return
	}
	post, err := h.client.UpdatePost(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags Posts
// @Param id path int true "Post ID"
// @Success 204
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DeletePost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GenerateImage godoc
// @Summary Generate an image for the post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /posts/{id}/generate-image [post]
func (h *PostHandler) GenerateImage(c *gin.Context) {
	h.action(c, h.client.GeneratePostImage)
}

// GenerateVideo godoc
// @Summary Generate a video for the post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /posts/{id}/generate-video [post]
func (h *PostHandler) GenerateVideo(c *gin.Context) {
	caps, err := h.capabilities.Resolve(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if !caps.CanGenerateVideo {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "video generation is not enabled for this client"))
		return
	}
	h.action(c, h.client.GeneratePostVideo)
}

// RegenerateText godoc
// @Summary Regenerate the post's text
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /posts/{id}/regenerate-text [post]
func (h *PostHandler) RegenerateText(c *gin.Context) {
	h.action(c, h.client.RegeneratePostText)
}

// QuickPublish godoc
// @Summary Publish the post immediately
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /posts/{id}/quick-publish [post]
func (h *PostHandler) QuickPublish(c *gin.Context) {
	h.action(c, h.client.QuickPublishPost)
}

func (h *PostHandler) action(c *gin.Context, fn func(context.Context, int64) (*models.Post, error)) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}
