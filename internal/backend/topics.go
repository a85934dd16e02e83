package backend

import (
	"context"
	"fmt"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListTopics returns all topics.
func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := c.get(ctx, "/topics/", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// CreateTopic creates a topic.
func (c *Client) CreateTopic(ctx context.Context, input models.TopicInput) (*models.Topic, error) {
	var topic models.Topic
	if err := c.post(ctx, "/topics/", input, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic partially updates a topic.
func (c *Client) UpdateTopic(ctx context.Context, id int64, input models.TopicInput) (*models.Topic, error) {
	var topic models.Topic
	if err := c.patch(ctx, fmt.Sprintf("/topics/%d/", id), input, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic removes a topic.
func (c *Client) DeleteTopic(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/topics/%d/", id))
}

// DiscoverContent asks the backend to discover content ideas for the topic.
func (c *Client) DiscoverContent(ctx context.Context, id int64) (*models.Topic, error) {
	var topic models.Topic
	if err := c.post(ctx, fmt.Sprintf("/topics/%d/discover_content/", id), nil, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// GenerateTopicPosts asks the backend to generate posts for the topic.
func (c *Client) GenerateTopicPosts(ctx context.Context, id int64, req models.GeneratePostsRequest) ([]models.Post, error) {
	var posts []models.Post
	if err := c.post(ctx, fmt.Sprintf("/topics/%d/generate_posts/", id), req, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GenerateTopicSEO asks the backend to generate a keyword set for the topic.
func (c *Client) GenerateTopicSEO(ctx context.Context, id int64) (*models.SEOKeywordSet, error) {
	var set models.SEOKeywordSet
	if err := c.post(ctx, fmt.Sprintf("/topics/%d/generate_seo/", id), nil, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// ListTemplates returns content templates.
func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := c.get(ctx, "/templates/", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate creates a content template.
func (c *Client) CreateTemplate(ctx context.Context, input models.TemplateInput) (*models.Template, error) {
	var template models.Template
	if err := c.post(ctx, "/templates/", input, &template); err != nil {
		return nil, err
	}
	return &template, nil
}
