package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListPosts returns posts matching the filter.
func (c *Client) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	query := url.Values{}
	if filter.TopicID != nil {
		query.Set("topic_id", strconv.FormatInt(*filter.TopicID, 10))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Platform != "" {
		query.Set("platform", filter.Platform)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	var posts []models.Post
	if err := c.get(ctx, "/posts/", query, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one post.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.post(ctx, "/posts/", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost partially updates a post.
func (c *Client) UpdatePost(ctx context.Context, id int64, input models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.patch(ctx, fmt.Sprintf("/posts/%d/", id), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/posts/%d/", id))
}

// GeneratePostImage asks the backend to generate an image for the post.
func (c *Client) GeneratePostImage(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/generate_image/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GeneratePostVideo asks the backend to generate a video for the post.
func (c *Client) GeneratePostVideo(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/generate_video/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RegeneratePostText regenerates the post's text.
func (c *Client) RegeneratePostText(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/regenerate_text/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// QuickPublishPost publishes the post immediately.
func (c *Client) QuickPublishPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/quick_publish/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
