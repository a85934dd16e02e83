package models

import "time"

// Topic groups generated posts around one content theme.
type Topic struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PostCount   int       `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TopicInput is the create/update payload for topics.
type TopicInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GeneratePostsRequest asks the backend to generate posts for a topic.
type GeneratePostsRequest struct {
	Count    int    `json:"count"`
	Platform string `json:"platform,omitempty"`
}

// Template is a reusable content template record.
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	Platform  string    `json:"platform,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateInput is the create payload for templates.
type TemplateInput struct {
	Name     string `json:"name"`
	Body     string `json:"body"`
	Platform string `json:"platform,omitempty"`
}
