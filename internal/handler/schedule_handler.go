package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type scheduleListClient interface {
	ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleItem, error)
	UpdateSchedule(ctx context.Context, id int64, update models.ScheduleUpdate) (*models.ScheduleItem, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

// ScheduleHandler exposes the raw schedule list behind the calendar.
type ScheduleHandler struct {
	client scheduleListClient
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(client scheduleListClient) *ScheduleHandler {
	return &ScheduleHandler{client: client}
}

// List godoc
// @Summary List schedule items
// @Tags Schedules
// @Produce json
// @Param platform query string false "Filter by platform"
// @Param status query string false "Filter by status"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter
	filter.Platform = c.Query("platform")
	filter.Status = models.ScheduleStatus(c.Query("status"))
	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = &to
		}
	}

	items, err := h.client.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Update godoc
// @Summary Update a schedule item
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule item ID"
// @Param payload body models.ScheduleUpdate true "Partial update"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var update models.ScheduleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload"))
		return
	}
	item, err := h.client.UpdateSchedule(c.Request.Context(), id, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a schedule item
// @Tags Schedules
// @Param id path int true "Schedule item ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DeleteSchedule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
