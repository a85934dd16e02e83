package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/contentfactory/panel-api/internal/models"
)

// ListSchedules returns schedule items matching the filter.
func (c *Client) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleItem, error) {
	query := url.Values{}
	if filter.Platform != "" {
		query.Set("platform", filter.Platform)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.From != nil {
		query.Set("from", filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		query.Set("to", filter.To.UTC().Format(time.RFC3339))
	}

	var items []models.ScheduleItem
	if err := c.get(ctx, "/schedules/", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateSchedule partially updates a schedule item.
func (c *Client) UpdateSchedule(ctx context.Context, id int64, update models.ScheduleUpdate) (*models.ScheduleItem, error) {
	var item models.ScheduleItem
	if err := c.patch(ctx, fmt.Sprintf("/schedules-manage/%d/", id), update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteSchedule removes a schedule item.
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/schedules-manage/%d/", id))
}

// PlanWeek submits the weekly-planning form.
func (c *Client) PlanWeek(ctx context.Context, plan models.WeekPlan) ([]models.ScheduleItem, error) {
	var items []models.ScheduleItem
	if err := c.post(ctx, "/schedules/plan_week/", plan, &items); err != nil {
		return nil, err
	}
	return items, nil
}
