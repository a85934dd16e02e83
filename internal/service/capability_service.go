package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

type clientInfoClient interface {
	GetClientSummary(ctx context.Context) (*models.ClientSummary, error)
}

const capabilitiesCacheKey = "capabilities:session"

// CapabilityService derives the panel's boolean affordance flags from the
// client summary. Flags are resolved once per session and cached until
// logout or an explicit refresh.
type CapabilityService struct {
	client       clientInfoClient
	cache        *CacheService
	allowedSlugs map[string]struct{}
	devMode      bool
	logger       *zap.Logger
}

// NewCapabilityService constructs the service.
func NewCapabilityService(client clientInfoClient, cache *CacheService, allowedSlugs []string, devMode bool, logger *zap.Logger) *CapabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	slugs := make(map[string]struct{}, len(allowedSlugs))
	for _, slug := range allowedSlugs {
		slugs[slug] = struct{}{}
	}
	return &CapabilityService{
		client:       client,
		cache:        cache,
		allowedSlugs: slugs,
		devMode:      devMode,
		logger:       logger,
	}
}

// Resolve returns the session capabilities, from cache when possible.
func (s *CapabilityService) Resolve(ctx context.Context) (*models.Capabilities, error) {
	var cached models.Capabilities
	if hit, _ := s.cache.Get(ctx, capabilitiesCacheKey, &cached); hit {
		return &cached, nil
	}

	summary, err := s.client.GetClientSummary(ctx)
	if err != nil {
		return nil, err
	}

	caps := s.derive(summary.Client)
	if err := s.cache.Set(ctx, capabilitiesCacheKey, caps, 0); err != nil {
		s.logger.Warn("capabilities cache set failed", zap.Error(err))
	}
	return &caps, nil
}

// Refresh drops the cached flags and re-derives them.
func (s *CapabilityService) Refresh(ctx context.Context) (*models.Capabilities, error) {
	if err := s.Invalidate(ctx); err != nil {
		return nil, err
	}
	return s.Resolve(ctx)
}

// Invalidate is called on logout so the next session re-derives its flags.
func (s *CapabilityService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, capabilitiesCacheKey)
}

// RequireEdit returns ErrForbidden unless the session may mutate content.
func (s *CapabilityService) RequireEdit(ctx context.Context) error {
	caps, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if !caps.CanEdit {
		return appErrors.Clone(appErrors.ErrForbidden, "read-only role")
	}
	return nil
}

func (s *CapabilityService) derive(client models.ClientInfo) models.Capabilities {
	caps := models.Capabilities{}
	switch client.Role {
	case models.RoleOwner, models.RoleEditor:
		caps.CanView = true
		caps.CanEdit = true
	case models.RoleViewer:
		caps.CanView = true
	}

	if s.devMode || client.DevMode {
		caps.CanGenerateVideo = caps.CanEdit
	} else if _, ok := s.allowedSlugs[client.Slug]; ok {
		caps.CanGenerateVideo = caps.CanEdit
	}

	return caps
}
