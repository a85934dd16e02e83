package models

import "time"

// AnalysisStatus tracks a channel analysis run on the backend.
type AnalysisStatus string

const (
	AnalysisQueued  AnalysisStatus = "queued"
	AnalysisRunning AnalysisStatus = "running"
	AnalysisDone    AnalysisStatus = "done"
	AnalysisFailed  AnalysisStatus = "failed"
)

// ChannelAnalysis is a backend-computed analysis of a Telegram channel.
type ChannelAnalysis struct {
	ID          int64          `json:"id"`
	ChannelName string         `json:"channel_name"`
	Status      AnalysisStatus `json:"status"`
	Subscribers int            `json:"subscribers,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
}

// ChannelAnalysisRequest starts a channel analysis.
type ChannelAnalysisRequest struct {
	ChannelName string `json:"channel_name"`
}

// ChannelValidation is the backend's answer to a channel validity probe.
type ChannelValidation struct {
	ChannelName string `json:"channel_name"`
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason,omitempty"`
}

// AnalyticsSnapshot is the cached poller view of the analyses list plus the
// statuses of any runs still in flight.
type AnalyticsSnapshot struct {
	Analyses    []ChannelAnalysis        `json:"analyses"`
	Running     map[int64]AnalysisStatus `json:"running,omitempty"`
	RefreshedAt time.Time                `json:"refreshed_at"`
}
