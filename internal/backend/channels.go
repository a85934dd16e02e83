package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/contentfactory/panel-api/internal/models"
)

// StartChannelAnalysis kicks off a Telegram channel analysis.
func (c *Client) StartChannelAnalysis(ctx context.Context, req models.ChannelAnalysisRequest) (*models.ChannelAnalysis, error) {
	var analysis models.ChannelAnalysis
	if err := c.post(ctx, "/tg_channel/", req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// ChannelAnalysisStatus polls the status of a running analysis.
func (c *Client) ChannelAnalysisStatus(ctx context.Context, id int64) (*models.ChannelAnalysis, error) {
	query := url.Values{}
	query.Set("id", fmt.Sprintf("%d", id))

	var analysis models.ChannelAnalysis
	if err := c.get(ctx, "/tg_channel/", query, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// ValidateChannel probes whether a channel name is analysable.
func (c *Client) ValidateChannel(ctx context.Context, channelName string) (*models.ChannelValidation, error) {
	query := url.Values{}
	query.Set("validate", channelName)

	var validation models.ChannelValidation
	if err := c.get(ctx, "/tg_channel/", query, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// ListChannelAnalyses returns completed and running analyses.
func (c *Client) ListChannelAnalyses(ctx context.Context) ([]models.ChannelAnalysis, error) {
	var analyses []models.ChannelAnalysis
	if err := c.get(ctx, "/channel-analyses/", nil, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// GetChannelAnalysis returns one analysis.
func (c *Client) GetChannelAnalysis(ctx context.Context, id int64) (*models.ChannelAnalysis, error) {
	var analysis models.ChannelAnalysis
	if err := c.get(ctx, fmt.Sprintf("/channel-analyses/%d/", id), nil, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// MergeAnalysisAudience merges the analysis audience into the client profile.
func (c *Client) MergeAnalysisAudience(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/channel-analyses/%d/merge_audience/", id), nil, nil)
}
