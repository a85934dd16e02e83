package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

type analyticsClient interface {
	ListChannelAnalyses(ctx context.Context) ([]models.ChannelAnalysis, error)
	GetChannelAnalysis(ctx context.Context, id int64) (*models.ChannelAnalysis, error)
	StartChannelAnalysis(ctx context.Context, req models.ChannelAnalysisRequest) (*models.ChannelAnalysis, error)
	ChannelAnalysisStatus(ctx context.Context, id int64) (*models.ChannelAnalysis, error)
	ValidateChannel(ctx context.Context, channelName string) (*models.ChannelValidation, error)
	MergeAnalysisAudience(ctx context.Context, id int64) error
}

const analyticsSnapshotKey = "analytics:snapshot"

// AnalyticsService fronts the backend's channel-analysis endpoints. The list
// view is served from the poller-maintained snapshot when fresh, so the
// panel's 5-second refresh cadence does not multiply into backend load.
type AnalyticsService struct {
	client      analyticsClient
	cache       *CacheService
	snapshotTTL time.Duration
	logger      *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(client analyticsClient, cache *CacheService, snapshotTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if snapshotTTL <= 0 {
		snapshotTTL = time.Minute
	}
	return &AnalyticsService{client: client, cache: cache, snapshotTTL: snapshotTTL, logger: logger}
}

// List returns the analyses list, preferring the cached snapshot.
func (s *AnalyticsService) List(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	var snapshot models.AnalyticsSnapshot
	if hit, _ := s.cache.Get(ctx, analyticsSnapshotKey, &snapshot); hit {
		return &snapshot, nil
	}
	return s.RefreshSnapshot(ctx)
}

// Get returns one analysis directly from the backend.
func (s *AnalyticsService) Get(ctx context.Context, id int64) (*models.ChannelAnalysis, error) {
	return s.client.GetChannelAnalysis(ctx, id)
}

// Start kicks off an analysis and invalidates the snapshot so the next list
// shows the new run.
func (s *AnalyticsService) Start(ctx context.Context, req models.ChannelAnalysisRequest) (*models.ChannelAnalysis, error) {
	req.ChannelName = strings.TrimPrefix(strings.TrimSpace(req.ChannelName), "@")
	if req.ChannelName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "channel_name is required")
	}

	analysis, err := s.client.StartChannelAnalysis(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, analyticsSnapshotKey); err != nil {
		s.logger.Warn("analytics snapshot invalidate failed", zap.Error(err))
	}
	return analysis, nil
}

// Validate probes a channel name.
func (s *AnalyticsService) Validate(ctx context.Context, channelName string) (*models.ChannelValidation, error) {
	channelName = strings.TrimPrefix(strings.TrimSpace(channelName), "@")
	if channelName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "channel name is required")
	}
	return s.client.ValidateChannel(ctx, channelName)
}

// MergeAudience merges the analysis audience into the client profile.
func (s *AnalyticsService) MergeAudience(ctx context.Context, id int64) error {
	return s.client.MergeAnalysisAudience(ctx, id)
}

// RefreshSnapshot reloads the analyses list from the backend and caches it.
// Runs on the analytics poll interval.
func (s *AnalyticsService) RefreshSnapshot(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	analyses, err := s.client.ListChannelAnalyses(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := models.AnalyticsSnapshot{
		Analyses:    analyses,
		RefreshedAt: time.Now().UTC(),
	}
	for _, analysis := range analyses {
		if analysis.Status == models.AnalysisQueued || analysis.Status == models.AnalysisRunning {
			if snapshot.Running == nil {
				snapshot.Running = map[int64]models.AnalysisStatus{}
			}
			snapshot.Running[analysis.ID] = analysis.Status
		}
	}

	if err := s.cache.Set(ctx, analyticsSnapshotKey, snapshot, s.snapshotTTL); err != nil {
		s.logger.Warn("analytics snapshot cache set failed", zap.Error(err))
	}
	return &snapshot, nil
}

// RefreshRunningStatuses re-polls only the runs still in flight. Runs on the
// slower status poll interval.
func (s *AnalyticsService) RefreshRunningStatuses(ctx context.Context) error {
	var snapshot models.AnalyticsSnapshot
	hit, _ := s.cache.Get(ctx, analyticsSnapshotKey, &snapshot)
	if !hit || len(snapshot.Running) == 0 {
		return nil
	}

	changed := false
	for id := range snapshot.Running {
		status, err := s.client.ChannelAnalysisStatus(ctx, id)
		if err != nil {
			s.logger.Warn("analysis status poll failed", zap.Int64("analysis_id", id), zap.Error(err))
			continue
		}
		if status.Status != snapshot.Running[id] {
			changed = true
		}
	}

	if changed {
		if _, err := s.RefreshSnapshot(ctx); err != nil {
			return err
		}
	}
	return nil
}
