package models

import "time"

// TrendItem is a discovered trending subject surfaced by the backend.
type TrendItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Score     float64   `json:"score"`
	URL       string    `json:"url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SEOKeywordSet is a backend-generated keyword group attached to a topic.
type SEOKeywordSet struct {
	ID        int64     `json:"id"`
	TopicID   *int64    `json:"topic_id,omitempty"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// SEOKeywordSetInput is the create payload for keyword sets.
type SEOKeywordSetInput struct {
	TopicID  *int64   `json:"topic_id,omitempty"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// GenerateSEORequest asks the backend to generate a keyword set.
type GenerateSEORequest struct {
	TopicID *int64 `json:"topic_id,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
}
