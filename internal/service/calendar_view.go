package service

import (
	"fmt"
	"time"

	"github.com/contentfactory/panel-api/internal/models"
)

const dateKeyLayout = "2006-01-02"

// StartOfWeek returns the Monday 00:00 UTC of the week containing t. The
// input is not mutated.
func StartOfWeek(t time.Time) time.Time {
	u := t.UTC()
	offset := (int(u.Weekday()) + 6) % 7
	return time.Date(u.Year(), u.Month(), u.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// DateKey is the canonical bucket key: the ISO date of t's UTC instant.
// Items near midnight in non-UTC locales bucket by their UTC day; the
// backend stores planned timestamps in UTC and the panel has always keyed
// buckets the same way.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// WeekDates returns the 7 consecutive dates starting at StartOfWeek(ref).
func WeekDates(ref time.Time) []time.Time {
	start := StartOfWeek(ref)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// MonthDates returns a fixed 42-date grid (6 weeks) starting at the Monday
// on or before the 1st of ref's month, so the grid always covers the whole
// month with a stable 6-row layout.
func MonthDates(ref time.Time) []time.Time {
	u := ref.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := StartOfWeek(first)
	dates := make([]time.Time, 42)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// DayDates returns ref's own date as a single-entry range.
func DayDates(ref time.Time) []time.Time {
	u := ref.UTC()
	return []time.Time{time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// VisibleDates computes the date range for a cursor and view mode.
func VisibleDates(cursor time.Time, view models.CalendarViewMode) []time.Time {
	switch view {
	case models.CalendarViewMonth:
		return MonthDates(cursor)
	case models.CalendarViewDay:
		return DayDates(cursor)
	default:
		return WeekDates(cursor)
	}
}

// CalendarItemID is the synthetic, stable card id for a schedule item.
func CalendarItemID(scheduleID int64) string {
	return fmt.Sprintf("schedule-%d", scheduleID)
}

// BuildView groups schedule items into per-date buckets for the given cursor
// and view mode. Every visible date gets a bucket, possibly empty; each item
// lands in exactly one bucket; items outside the visible range are dropped.
// The view is recomputed from scratch on every change, never patched in
// place.
func BuildView(items []models.ScheduleItem, cursor time.Time, view models.CalendarViewMode) models.CalendarView {
	dates := VisibleDates(cursor, view)

	keys := make([]string, len(dates))
	buckets := make(models.ItemsByDate, len(dates))
	for i, d := range dates {
		key := DateKey(d)
		keys[i] = key
		buckets[key] = []models.CalendarItem{}
	}

	for _, item := range items {
		key := DateKey(item.PlannedAt)
		if _, visible := buckets[key]; !visible {
			continue
		}
		buckets[key] = append(buckets[key], models.CalendarItem{
			ID:         CalendarItemID(item.ID),
			ScheduleID: item.ID,
			PostID:     item.PostID,
			Title:      item.PostTitle,
			Platform:   item.Platform,
			Status:     item.Status,
			PlannedAt:  item.PlannedAt,
			TimeLabel:  item.PlannedAt.UTC().Format("15:04"),
		})
	}

	return models.CalendarView{
		View:    view,
		Cursor:  DateKey(cursor),
		Dates:   keys,
		Buckets: buckets,
	}
}

// FindContainer returns the bucket key currently holding the item id, or
// false when no bucket holds it.
func FindContainer(view models.CalendarView, itemID string) (string, bool) {
	for _, key := range view.Dates {
		for _, item := range view.Buckets[key] {
			if item.ID == itemID {
				return key, true
			}
		}
	}
	return "", false
}
