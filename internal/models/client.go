package models

import "time"

// ClientRole is the panel user's role within the client organisation.
type ClientRole string

const (
	RoleOwner  ClientRole = "owner"
	RoleEditor ClientRole = "editor"
	RoleViewer ClientRole = "viewer"
)

// ClientInfo is the per-session client record the capability flags derive
// from.
type ClientInfo struct {
	ID      int64      `json:"id"`
	Slug    string     `json:"slug"`
	Name    string     `json:"name"`
	Role    ClientRole `json:"role"`
	DevMode bool       `json:"dev_mode"`
}

// ClientSettings mirrors the backend's editable client settings.
type ClientSettings struct {
	Timezone        string `json:"timezone,omitempty"`
	DefaultPlatform string `json:"default_platform,omitempty"`
	Language        string `json:"language,omitempty"`
	AutoPublish     bool   `json:"auto_publish"`
}

// ClientSummary aggregates the dashboard header counters.
type ClientSummary struct {
	Client         ClientInfo `json:"client"`
	PostsTotal     int        `json:"posts_total"`
	PostsScheduled int        `json:"posts_scheduled"`
	TopicsTotal    int        `json:"topics_total"`
	LastPublished  *time.Time `json:"last_published,omitempty"`
}

// Capabilities are the boolean affordance flags derived from ClientInfo.
// Resolved once per session and cached until logout or explicit refresh.
type Capabilities struct {
	CanView          bool `json:"can_view"`
	CanEdit          bool `json:"can_edit"`
	CanGenerateVideo bool `json:"can_generate_video"`
}
