package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentfactory/panel-api/internal/models"
)

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"saturday", time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC), "2024-06-10"},
		{"monday", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "2024-06-10"},
		{"sunday", time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC), "2024-06-10"},
		{"year boundary", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), "2024-12-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.in)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
			assert.Equal(t, time.Monday, got.Weekday())
			assert.Zero(t, got.Hour())
		})
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	require.Len(t, dates, 7)
	assert.Equal(t, "2024-06-10", DateKey(dates[0]))
	assert.Equal(t, "2024-06-16", DateKey(dates[6]))
	for i := 1; i < len(dates); i++ {
		assert.Equal(t, 24*time.Hour, dates[i].Sub(dates[i-1]))
	}
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, dates, 42)
	// June 2024 starts on a Saturday; the grid opens on the Monday before.
	assert.Equal(t, "2024-05-27", DateKey(dates[0]))
	assert.Equal(t, time.Monday, dates[0].Weekday())

	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[DateKey(d)] = true
	}
	for day := 1; day <= 30; day++ {
		key := time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.True(t, seen[key], "grid must cover %s", key)
	}
}

func TestDayDates(t *testing.T) {
	dates := DayDates(time.Date(2024, 6, 15, 18, 45, 0, 0, time.UTC))
	require.Len(t, dates, 1)
	assert.Equal(t, "2024-06-15", DateKey(dates[0]))
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 local on the 16th is 22:30 UTC on the 15th.
	late := time.Date(2024, 6, 16, 1, 30, 0, 0, loc)
	assert.Equal(t, "2024-06-15", DateKey(late))
}

func TestBuildViewPartition(t *testing.T) {
	items := []models.ScheduleItem{
		{ID: 1, PostID: 10, PostTitle: "a", Platform: "telegram", Status: models.SchedulePending, PlannedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
		{ID: 2, PostID: 11, PostTitle: "b", Platform: "vk", Status: models.SchedulePending, PlannedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)},
		{ID: 3, PostID: 12, PostTitle: "c", Platform: "telegram", Status: models.SchedulePublished, PlannedAt: time.Date(2024, 6, 14, 18, 30, 0, 0, time.UTC)},
		// Outside the visible week, must be dropped.
		{ID: 4, PostID: 13, PostTitle: "d", Platform: "telegram", Status: models.SchedulePending, PlannedAt: time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)},
	}

	view := BuildView(items, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), models.CalendarViewWeek)

	require.Len(t, view.Dates, 7)
	assert.Equal(t, "2024-06-12", view.Cursor)
	assert.Equal(t, models.CalendarViewWeek, view.View)

	// Every visible date has a bucket, even empty ones.
	for _, key := range view.Dates {
		_, ok := view.Buckets[key]
		assert.True(t, ok, "missing bucket for %s", key)
	}

	total := 0
	for _, bucket := range view.Buckets {
		total += len(bucket)
	}
	assert.Equal(t, 3, total)

	monday := view.Buckets["2024-06-10"]
	require.Len(t, monday, 2)
	assert.Equal(t, "schedule-1", monday[0].ID)
	assert.Equal(t, "09:00", monday[0].TimeLabel)
	assert.Equal(t, int64(10), monday[0].PostID)

	friday := view.Buckets["2024-06-14"]
	require.Len(t, friday, 1)
	assert.Equal(t, "18:30", friday[0].TimeLabel)

	assert.Empty(t, view.Buckets["2024-06-11"])
}

func TestFindContainer(t *testing.T) {
	items := []models.ScheduleItem{
		{ID: 7, PostTitle: "x", PlannedAt: time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC)},
	}
	view := BuildView(items, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), models.CalendarViewWeek)

	key, ok := FindContainer(view, "schedule-7")
	require.True(t, ok)
	assert.Equal(t, "2024-06-13", key)

	_, ok = FindContainer(view, "schedule-999")
	assert.False(t, ok)
}
