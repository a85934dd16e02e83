package models

import "time"

// ScheduleStatus tracks a planned publish action through the backend's
// publish worker.
type ScheduleStatus string

const (
	SchedulePending    ScheduleStatus = "pending"
	ScheduleInProgress ScheduleStatus = "in_progress"
	SchedulePublished  ScheduleStatus = "published"
	ScheduleFailed     ScheduleStatus = "failed"
)

// ScheduleItem is a planned (or completed) publish action for a post on a
// platform at a specific time. Owned by the backend; the panel only moves its
// planned timestamp and deletes it on explicit user action.
type ScheduleItem struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"post_id"`
	PostTitle string         `json:"post_title"`
	Platform  string         `json:"platform"`
	PlannedAt time.Time      `json:"planned_at"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ScheduleFilter captures filtering criteria for listing schedule items.
type ScheduleFilter struct {
	Platform string
	Status   ScheduleStatus
	From     *time.Time
	To       *time.Time
}

// ScheduleUpdate is the partial update accepted by the backend's
// schedules-manage endpoint.
type ScheduleUpdate struct {
	PlannedAt *time.Time      `json:"planned_at,omitempty"`
	Status    *ScheduleStatus `json:"status,omitempty"`
}

// WeekPlan is the weekly-planning form forwarded to the backend.
type WeekPlan struct {
	WeekStart string         `json:"week_start"`
	Slots     []WeekPlanSlot `json:"slots"`
}

// WeekPlanSlot assigns a topic or post to a weekday/time slot.
type WeekPlanSlot struct {
	Weekday  int    `json:"weekday"`
	Time     string `json:"time"`
	Platform string `json:"platform"`
	TopicID  *int64 `json:"topic_id,omitempty"`
	PostID   *int64 `json:"post_id,omitempty"`
}
