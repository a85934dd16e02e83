package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	"github.com/contentfactory/panel-api/pkg/response"
)

type scheduleFake struct {
	items   []models.ScheduleItem
	updated []models.ScheduleUpdate
	deleted []int64
}

func (f *scheduleFake) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleItem, error) {
	out := make([]models.ScheduleItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *scheduleFake) UpdateSchedule(ctx context.Context, id int64, update models.ScheduleUpdate) (*models.ScheduleItem, error) {
	f.updated = append(f.updated, update)
	for i := range f.items {
		if f.items[i].ID == id {
			if update.PlannedAt != nil {
				f.items[i].PlannedAt = *update.PlannedAt
			}
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *scheduleFake) DeleteSchedule(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *scheduleFake) PlanWeek(ctx context.Context, plan models.WeekPlan) ([]models.ScheduleItem, error) {
	return f.items, nil
}

func newCalendarRouter(fake *scheduleFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	calendarSvc := service.NewCalendarService(fake, nil, zap.NewNop())
	exportSvc := service.NewExportService(fake)
	h := NewCalendarHandler(calendarSvc, exportSvc)

	r := gin.New()
	r.GET("/calendar", h.View)
	r.POST("/calendar/move", h.Move)
	r.POST("/calendar/plan-week", h.PlanWeek)
	r.DELETE("/calendar/items/:id", h.DeleteItem)
	r.GET("/calendar/export", h.Export)
	return r
}

func calendarFixture() []models.ScheduleItem {
	return []models.ScheduleItem{
		{ID: 1, PostID: 10, PostTitle: "launch", Platform: "telegram", Status: models.SchedulePending, PlannedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
		{ID: 2, PostID: 11, PostTitle: "recap", Platform: "vk", Status: models.SchedulePending, PlannedAt: time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)},
	}
}

func TestCalendarViewEndpoint(t *testing.T) {
	router := newCalendarRouter(&scheduleFake{items: calendarFixture()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calendar?cursor=2024-06-15&view=week", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.CalendarView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "2024-06-15", envelope.Data.Cursor)
	require.Len(t, envelope.Data.Dates, 7)
	assert.Len(t, envelope.Data.Buckets["2024-06-10"], 1)
	assert.Len(t, envelope.Data.Buckets["2024-06-12"], 1)
}

func TestCalendarViewRejectsBadRequests(t *testing.T) {
	router := newCalendarRouter(&scheduleFake{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calendar?cursor=not-a-date", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/calendar?view=quarter", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarMoveEndpoint(t *testing.T) {
	fake := &scheduleFake{items: calendarFixture()}
	router := newCalendarRouter(fake)

	body, _ := json.Marshal(service.MoveRequest{
		Cursor: "2024-06-15",
		View:   models.CalendarViewWeek,
		ItemID: "schedule-1",
		Target: "2024-06-14",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/calendar/move", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.MoveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Persisted)
	require.Len(t, fake.updated, 1)
	require.NotNil(t, fake.updated[0].PlannedAt)
	assert.Equal(t, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC), *fake.updated[0].PlannedAt)
}

func TestCalendarMoveRejectsMalformedBody(t *testing.T) {
	router := newCalendarRouter(&scheduleFake{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/calendar/move", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestCalendarDeleteItemEndpoint(t *testing.T) {
	fake := &scheduleFake{items: calendarFixture()}
	router := newCalendarRouter(fake)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/calendar/items/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{1}, fake.deleted)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/calendar/items/abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarExportEndpoint(t *testing.T) {
	router := newCalendarRouter(&scheduleFake{items: calendarFixture()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calendar/export?cursor=2024-06-15&format=csv", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "content-plan-2024-06-10.csv")
	assert.Contains(t, w.Body.String(), "launch")
}
