package backend

import (
	"context"
	"fmt"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListTrends returns the trending-subjects feed.
func (c *Client) ListTrends(ctx context.Context) ([]models.TrendItem, error) {
	var trends []models.TrendItem
	if err := c.get(ctx, "/trends/", nil, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

// CreateTopicFromTrend promotes a trend into a topic.
func (c *Client) CreateTopicFromTrend(ctx context.Context, id int64) (*models.Topic, error) {
	var topic models.Topic
	if err := c.post(ctx, fmt.Sprintf("/trends/%d/create_topic/", id), nil, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// DismissTrend hides a trend from the feed.
func (c *Client) DismissTrend(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/trends/%d/dismiss/", id), nil, nil)
}

// ListSEOKeywordSets returns keyword sets.
func (c *Client) ListSEOKeywordSets(ctx context.Context) ([]models.SEOKeywordSet, error) {
	var sets []models.SEOKeywordSet
	if err := c.get(ctx, "/seo-keywords/", nil, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// CreateSEOKeywordSet creates a keyword set.
func (c *Client) CreateSEOKeywordSet(ctx context.Context, input models.SEOKeywordSetInput) (*models.SEOKeywordSet, error) {
	var set models.SEOKeywordSet
	if err := c.post(ctx, "/seo-keywords/", input, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// GenerateSEOKeywordSet asks the backend to generate a keyword set.
func (c *Client) GenerateSEOKeywordSet(ctx context.Context, req models.GenerateSEORequest) (*models.SEOKeywordSet, error) {
	var set models.SEOKeywordSet
	if err := c.post(ctx, "/seo-keywords/generate/", req, &set); err != nil {
		return nil, err
	}
	return &set, nil
}
