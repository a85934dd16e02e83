package models

import "time"

// CalendarViewMode selects the visible date range of the content calendar.
type CalendarViewMode string

const (
	CalendarViewWeek  CalendarViewMode = "week"
	CalendarViewMonth CalendarViewMode = "month"
	CalendarViewDay   CalendarViewMode = "day"
)

// Valid reports whether the mode is one of week, month or day.
func (m CalendarViewMode) Valid() bool {
	switch m {
	case CalendarViewWeek, CalendarViewMonth, CalendarViewDay:
		return true
	}
	return false
}

// CalendarItem is the view-model projection of a ScheduleItem. The ID is
// synthetic and stable for a given schedule item; TimeLabel is the item's
// clock time rendered for card display. Derived, never persisted.
type CalendarItem struct {
	ID         string         `json:"id"`
	ScheduleID int64          `json:"schedule_id"`
	PostID     int64          `json:"post_id"`
	Title      string         `json:"title"`
	Platform   string         `json:"platform"`
	Status     ScheduleStatus `json:"status"`
	PlannedAt  time.Time      `json:"planned_at"`
	TimeLabel  string         `json:"time_label"`
}

// ItemsByDate maps an ISO date key (YYYY-MM-DD) to the ordered items planned
// on that date. Every visible date has an entry, possibly empty; an item
// appears in exactly one bucket.
type ItemsByDate map[string][]CalendarItem

// CalendarView is the fully computed calendar state for one cursor/view pair.
type CalendarView struct {
	View    CalendarViewMode `json:"view"`
	Cursor  string           `json:"cursor"`
	Dates   []string         `json:"dates"`
	Buckets ItemsByDate      `json:"buckets"`
}
