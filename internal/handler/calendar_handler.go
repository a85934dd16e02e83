package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

// CalendarHandler exposes the content calendar: bucketed views, drag-and-drop
// moves, weekly planning and the plan export.
type CalendarHandler struct {
	calendar *service.CalendarService
	export   *service.ExportService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(calendar *service.CalendarService, export *service.ExportService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, export: export}
}

// View godoc
// @Summary Bucketed calendar view
// @Tags Calendar
// @Produce json
// @Param cursor query string false "Cursor date (YYYY-MM-DD), defaults to today"
// @Param view query string false "week, month or day"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) View(c *gin.Context) {
	req := service.CalendarViewRequest{
		Cursor: c.DefaultQuery("cursor", service.DateKey(time.Now())),
		View:   models.CalendarViewMode(c.DefaultQuery("view", string(models.CalendarViewWeek))),
	}

	view, err := h.calendar.View(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Move godoc
// @Summary Move a calendar card
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.MoveRequest true "Drop description"
// @Success 200 {object} response.Envelope
// @Router /calendar/move [post]
func (h *CalendarHandler) Move(c *gin.Context) {
	var req service.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload"))
		return
	}

	result, err := h.calendar.Move(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// PlanWeek godoc
// @Summary Submit the weekly planning form
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body models.WeekPlan true "Week plan"
// @Success 200 {object} response.Envelope
// @Router /calendar/plan-week [post]
func (h *CalendarHandler) PlanWeek(c *gin.Context) {
	var plan models.WeekPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week plan"))
		return
	}

	items, err := h.calendar.PlanWeek(c.Request.Context(), plan)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// DeleteItem godoc
// @Summary Delete a schedule item
// @Tags Calendar
// @Param id path int true "Schedule item ID"
// @Success 204
// @Router /calendar/items/{id} [delete]
func (h *CalendarHandler) DeleteItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.calendar.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download the week's content plan
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param cursor query string false "Cursor date (YYYY-MM-DD), defaults to today"
// @Param format query string false "csv or pdf"
// @Success 200
// @Router /calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export disabled"))
		return
	}

	cursorRaw := c.DefaultQuery("cursor", service.DateKey(time.Now()))
	cursor, err := time.ParseInLocation("2006-01-02", cursorRaw, time.UTC)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "cursor must be YYYY-MM-DD"))
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))

	result, err := h.export.WeekPlan(c.Request.Context(), cursor, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
