package models

import "time"

// PostStatus mirrors the backend's post lifecycle.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostReady     PostStatus = "ready"
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
)

// Post is a backend-mirrored content record.
type Post struct {
	ID        int64      `json:"id"`
	TopicID   *int64     `json:"topic_id,omitempty"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	Platform  string     `json:"platform"`
	Status    PostStatus `json:"status"`
	ImageURL  string     `json:"image_url,omitempty"`
	VideoURL  string     `json:"video_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostFilter captures filtering criteria for listing posts.
type PostFilter struct {
	TopicID  *int64
	Status   PostStatus
	Platform string
	Search   string
	Page     int
	PageSize int
}

// PostInput is the create/update payload for posts.
type PostInput struct {
	TopicID  *int64     `json:"topic_id,omitempty"`
	Title    string     `json:"title"`
	Text     string     `json:"text"`
	Platform string     `json:"platform,omitempty"`
	Status   PostStatus `json:"status,omitempty"`
}
