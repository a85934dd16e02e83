package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

type clientInfoFake struct {
	summary *models.ClientSummary
	err     error
	calls   int
}

func (f *clientInfoFake) GetClientSummary(ctx context.Context) (*models.ClientSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func summaryFor(role models.ClientRole, slug string, devMode bool) *models.ClientSummary {
	return &models.ClientSummary{
		Client: models.ClientInfo{Slug: slug, Role: role, DevMode: devMode},
	}
}

func newCapabilityServiceForTest(fake *clientInfoFake, allowed []string) (*CapabilityService, *memoryCacheRepo) {
	repo := newMemoryCacheRepo()
	cacheSvc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	return NewCapabilityService(fake, cacheSvc, allowed, false, zap.NewNop()), repo
}

func TestCapabilityDerivation(t *testing.T) {
	cases := []struct {
		name    string
		role    models.ClientRole
		slug    string
		devMode bool
		allowed []string
		want    models.Capabilities
	}{
		{"owner", models.RoleOwner, "acme", false, nil, models.Capabilities{CanView: true, CanEdit: true}},
		{"editor", models.RoleEditor, "acme", false, nil, models.Capabilities{CanView: true, CanEdit: true}},
		{"viewer", models.RoleViewer, "acme", false, nil, models.Capabilities{CanView: true}},
		{"unknown role", models.ClientRole("guest"), "acme", false, nil, models.Capabilities{}},
		{"editor with allow-listed slug", models.RoleEditor, "acme", false, []string{"acme"}, models.Capabilities{CanView: true, CanEdit: true, CanGenerateVideo: true}},
		{"editor in dev mode", models.RoleEditor, "acme", true, nil, models.Capabilities{CanView: true, CanEdit: true, CanGenerateVideo: true}},
		{"viewer never generates video", models.RoleViewer, "acme", true, []string{"acme"}, models.Capabilities{CanView: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &clientInfoFake{summary: summaryFor(tc.role, tc.slug, tc.devMode)}
			svc, _ := newCapabilityServiceForTest(fake, tc.allowed)

			caps, err := svc.Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, *caps)
		})
	}
}

func TestCapabilityResolveCaches(t *testing.T) {
	fake := &clientInfoFake{summary: summaryFor(models.RoleOwner, "acme", false)}
	svc, _ := newCapabilityServiceForTest(fake, nil)

	_, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
}

func TestCapabilityRefreshRederives(t *testing.T) {
	fake := &clientInfoFake{summary: summaryFor(models.RoleViewer, "acme", false)}
	svc, _ := newCapabilityServiceForTest(fake, nil)

	caps, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, caps.CanEdit)

	// The role changed on the backend; a refresh must pick it up.
	fake.summary = summaryFor(models.RoleEditor, "acme", false)
	caps, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, caps.CanEdit)
	assert.Equal(t, 2, fake.calls)
}

func TestCapabilityInvalidate(t *testing.T) {
	fake := &clientInfoFake{summary: summaryFor(models.RoleOwner, "acme", false)}
	svc, repo := newCapabilityServiceForTest(fake, nil)

	_, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, repo.data)

	require.NoError(t, svc.Invalidate(context.Background()))
	assert.Empty(t, repo.data)
}

func TestRequireEdit(t *testing.T) {
	fake := &clientInfoFake{summary: summaryFor(models.RoleViewer, "acme", false)}
	svc, _ := newCapabilityServiceForTest(fake, nil)

	err := svc.RequireEdit(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	fake.summary = summaryFor(models.RoleEditor, "acme", false)
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.RequireEdit(context.Background()))
}
