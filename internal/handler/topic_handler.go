package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type topicClient interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
	CreateTopic(ctx context.Context, input models.TopicInput) (*models.Topic, error)
	UpdateTopic(ctx context.Context, id int64, input models.TopicInput) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
	DiscoverContent(ctx context.Context, id int64) (*models.Topic, error)
	GenerateTopicPosts(ctx context.Context, id int64, req models.GeneratePostsRequest) ([]models.Post, error)
	GenerateTopicSEO(ctx context.Context, id int64) (*models.SEOKeywordSet, error)
}

// TopicHandler manages topic endpoints.
type TopicHandler struct {
	client topicClient
}

// NewTopicHandler constructs handler.
func NewTopicHandler(client topicClient) *TopicHandler {
	return &TopicHandler{client: client}
}

// List godoc
// @Summary List topics
// @Tags Topics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.client.ListTopics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topics)
}

// Create godoc
// @Summary Create a topic
// @Tags Topics
// @Accept json
// @Produce json
// @Param payload body models.TopicInput true "Topic"
// @Success 201 {object} response.Envelope
// @Router /topics [post]
func (h *TopicHandler) Create(c *gin.Context) {
	var input models.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload"))
		return
	}
	topic, err := h.client.CreateTopic(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}

// Update godoc
// @Summary Update a topic
// @Tags Topics
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param payload body models.TopicInput true "Topic"
// @Success 200 {object} response.Envelope
// @Router /topics/{id} [patch]
func (h *TopicHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input models.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload"))
		return
	}
	topic, err := h.client.UpdateTopic(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topic)
}

// Delete godoc
// @Summary Delete a topic
// @Tags Topics
// @Param id path int true "Topic ID"
// @Success 204
// @Router /topics/{id} [delete]
func (h *TopicHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DeleteTopic(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DiscoverContent godoc
// @Summary Discover content ideas for the topic
// @Tags Topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /topics/{id}/discover-content [post]
func (h *TopicHandler) DiscoverContent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	topic, err := h.client.DiscoverContent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topic)
}

// GeneratePosts godoc
// @Summary Generate posts for the topic
// @Tags Topics
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param payload body models.GeneratePostsRequest true "Generation request"
// @Success 200 {object} response.Envelope
// @Router /topics/{id}/generate-posts [post]
func (h *TopicHandler) GeneratePosts(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.GeneratePostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload"))
		return
	}
	posts, err := h.client.GenerateTopicPosts(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// GenerateSEO godoc
// @Summary Generate a keyword set for the topic
// @Tags Topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /topics/{id}/generate-seo [post]
func (h *TopicHandler) GenerateSEO(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	set, err := h.client.GenerateTopicSEO(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set)
}
