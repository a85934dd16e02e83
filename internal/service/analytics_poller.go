package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/pkg/config"
	"github.com/contentfactory/panel-api/pkg/poll"
)

// NewAnalyticsPollers builds the background loops that keep the analytics
// snapshot warm: the list refresh on the fast interval and the in-flight
// status re-poll on the slower one. Both stop with the parent context.
func NewAnalyticsPollers(svc *AnalyticsService, cfg config.PollingConfig, logger *zap.Logger) []*poll.Poller {
	if !cfg.Enabled {
		return nil
	}

	list := poll.New("analytics-list", func(ctx context.Context) error {
		_, err := svc.RefreshSnapshot(ctx)
		return err
	}, poll.Config{Interval: cfg.AnalyticsList, Immediate: true, Logger: logger})

	status := poll.New("analysis-status", func(ctx context.Context) error {
		return svc.RefreshRunningStatuses(ctx)
	}, poll.Config{Interval: cfg.AnalysisStatus, Logger: logger})

	return []*poll.Poller{list, status}
}
