package backend

import (
	"context"
	"fmt"
	"io"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListVkIntegrations returns connected VK communities.
func (c *Client) ListVkIntegrations(ctx context.Context) ([]models.VkIntegration, error) {
	var integrations []models.VkIntegration
	if err := c.get(ctx, "/vk/integrations/", nil, &integrations); err != nil {
		return nil, err
	}
	return integrations, nil
}

// DeleteVkIntegration disconnects a VK community.
func (c *Client) DeleteVkIntegration(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/vk/integrations/%d/", id))
}

// VkPhoto is one photo forwarded to the VK photo-post endpoint.
type VkPhoto struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// PostVkWithPhotos uploads a photo post. The body goes through as
// multipart/form-data untouched.
func (c *Client) PostVkWithPhotos(ctx context.Context, message string, photos []VkPhoto) (*models.VkPhotoPostResult, error) {
	body := &MultipartBody{
		Fields: map[string]string{"message": message},
	}
	for i, photo := range photos {
		body.Files = append(body.Files, MultipartFile{
			Field:       fmt.Sprintf("photo%d", i+1),
			Name:        photo.Name,
			ContentType: photo.ContentType,
			Reader:      photo.Reader,
		})
	}

	var result models.VkPhotoPostResult
	if err := c.post(ctx, "/vk/post_with_photos/", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VkConnectURL returns the OAuth redirect target for the connect popup.
func (c *Client) VkConnectURL(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.get(ctx, "/vk/connect/", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
