package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

type scheduleClient interface {
	ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleItem, error)
	UpdateSchedule(ctx context.Context, id int64, update models.ScheduleUpdate) (*models.ScheduleItem, error)
	DeleteSchedule(ctx context.Context, id int64) error
	PlanWeek(ctx context.Context, plan models.WeekPlan) ([]models.ScheduleItem, error)
}

// CalendarService computes the content calendar's bucketed views and handles
// drag-and-drop reassignment of schedule items across dates.
type CalendarService struct {
	client    scheduleClient
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(client scheduleClient, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{client: client, validator: validate, logger: logger}
}

// CalendarViewRequest selects the visible range.
type CalendarViewRequest struct {
	Cursor string                  `json:"cursor" validate:"required,datetime=2006-01-02"`
	View   models.CalendarViewMode `json:"view" validate:"required"`
}

// MoveRequest describes a drop: the dragged card and the drop target, which
// is either a bucket key (YYYY-MM-DD) or another card's id resolved to its
// container.
type MoveRequest struct {
	Cursor string                  `json:"cursor" validate:"required,datetime=2006-01-02"`
	View   models.CalendarViewMode `json:"view" validate:"required"`
	ItemID string                  `json:"item_id" validate:"required"`
	Target string                  `json:"target" validate:"required"`
	Index  *int                    `json:"index,omitempty"`
}

// MoveResult carries the post-drop view plus whether the move was persisted.
type MoveResult struct {
	View      models.CalendarView `json:"view"`
	Persisted bool                `json:"persisted"`
}

// View loads the schedule items covering the visible range and buckets them.
func (s *CalendarService) View(ctx context.Context, req CalendarViewRequest) (*models.CalendarView, error) {
	cursor, err := s.parseViewRequest(req.Cursor, req.View)
	if err != nil {
		return nil, err
	}

	items, err := s.loadRange(ctx, cursor, req.View)
	if err != nil {
		return nil, err
	}

	view := BuildView(items, cursor, req.View)
	return &view, nil
}

// Move applies a drop. Same-bucket drops reorder in memory only; cross-bucket
// drops persist a new planned timestamp combining the target date with the
// item's original clock time, then reload the range from the backend.
func (s *CalendarService) Move(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}
	cursor, err := s.parseViewRequest(req.Cursor, req.View)
	if err != nil {
		return nil, err
	}

	items, err := s.loadRange(ctx, cursor, req.View)
	if err != nil {
		return nil, err
	}
	view := BuildView(items, cursor, req.View)

	sourceKey, ok := FindContainer(view, req.ItemID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "calendar item not found")
	}

	targetKey, targetIndex, err := resolveTarget(view, req.Target)
	if err != nil {
		return nil, err
	}

	if targetKey == sourceKey {
		reorderBucket(&view, sourceKey, req.ItemID, pickIndex(req.Index, targetIndex))
		return &MoveResult{View: view, Persisted: false}, nil
	}

	item, _ := bucketItem(view, sourceKey, req.ItemID)
	plannedAt, err := combineDateAndTime(targetKey, item.PlannedAt)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.UpdateSchedule(ctx, item.ScheduleID, models.ScheduleUpdate{PlannedAt: &plannedAt}); err != nil {
		// The dragged card may be visually out of sync with the server until
		// the next reload; the caller keeps the prior view.
		s.logger.Warn("schedule move failed",
			zap.Int64("schedule_id", item.ScheduleID),
			zap.String("target", targetKey),
			zap.Error(err))
		return nil, err
	}

	items, err = s.loadRange(ctx, cursor, req.View)
	if err != nil {
		return nil, err
	}
	reloaded := BuildView(items, cursor, req.View)
	return &MoveResult{View: reloaded, Persisted: true}, nil
}

// Delete removes a schedule item.
func (s *CalendarService) Delete(ctx context.Context, scheduleID int64) error {
	return s.client.DeleteSchedule(ctx, scheduleID)
}

// PlanWeek validates and forwards the weekly-planning form.
func (s *CalendarService) PlanWeek(ctx context.Context, plan models.WeekPlan) ([]models.ScheduleItem, error) {
	if plan.WeekStart == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week_start is required")
	}
	start, err := time.ParseInLocation(dateKeyLayout, plan.WeekStart, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week_start must be YYYY-MM-DD")
	}
	if !start.Equal(StartOfWeek(start)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week_start must be a Monday")
	}
	for _, slot := range plan.Slots {
		if slot.Weekday < 0 || slot.Weekday > 6 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "slot weekday must be 0..6")
		}
		if _, err := time.Parse("15:04", slot.Time); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "slot time must be HH:MM")
		}
	}
	return s.client.PlanWeek(ctx, plan)
}

func (s *CalendarService) parseViewRequest(cursor string, view models.CalendarViewMode) (time.Time, error) {
	if !view.Valid() {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "view must be week, month or day")
	}
	t, err := time.ParseInLocation(dateKeyLayout, cursor, time.UTC)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "cursor must be YYYY-MM-DD")
	}
	return t, nil
}

func (s *CalendarService) loadRange(ctx context.Context, cursor time.Time, view models.CalendarViewMode) ([]models.ScheduleItem, error) {
	dates := VisibleDates(cursor, view)
	from := dates[0]
	to := dates[len(dates)-1].AddDate(0, 0, 1)
	return s.client.ListSchedules(ctx, models.ScheduleFilter{From: &from, To: &to})
}

func resolveTarget(view models.CalendarView, target string) (string, int, error) {
	if _, ok := view.Buckets[target]; ok {
		return target, len(view.Buckets[target]), nil
	}
	key, ok := FindContainer(view, target)
	if !ok {
		return "", 0, appErrors.Clone(appErrors.ErrNotFound, "drop target not found")
	}
	for i, item := range view.Buckets[key] {
		if item.ID == target {
			return key, i, nil
		}
	}
	return key, len(view.Buckets[key]), nil
}

func bucketItem(view models.CalendarView, key, itemID string) (models.CalendarItem, bool) {
	for _, item := range view.Buckets[key] {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.CalendarItem{}, false
}

// reorderBucket splices the item out of its position and back in at index,
// replacing the bucket slice rather than mutating shared state.
func reorderBucket(view *models.CalendarView, key, itemID string, index int) {
	bucket := view.Buckets[key]
	from := -1
	for i, item := range bucket {
		if item.ID == itemID {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}

	next := make([]models.CalendarItem, 0, len(bucket))
	next = append(next, bucket[:from]...)
	next = append(next, bucket[from+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(next) {
		index = len(next)
	}
	next = append(next[:index], append([]models.CalendarItem{bucket[from]}, next[index:]...)...)
	view.Buckets[key] = next
}

func pickIndex(requested *int, fallback int) int {
	if requested != nil {
		return *requested
	}
	return fallback
}

// combineDateAndTime keeps the item's original clock time on the target
// bucket's date.
func combineDateAndTime(dateKey string, original time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(dateKeyLayout, dateKey, time.UTC)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "target bucket key must be YYYY-MM-DD")
	}
	u := original.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.UTC), nil
}
