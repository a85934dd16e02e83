package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/internal/service"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

type authClientFake struct {
	session    *models.SessionInfo
	loginErr   error
	refreshErr error

	logins      []models.TelegramLogin
	logoutCalls int
}

func (f *authClientFake) TelegramLogin(ctx context.Context, login models.TelegramLogin) (*models.SessionInfo, error) {
	f.logins = append(f.logins, login)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.session, nil
}

func (f *authClientFake) DevLogin(ctx context.Context) (*models.SessionInfo, error) {
	return f.session, nil
}

func (f *authClientFake) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *authClientFake) Refresh(ctx context.Context) error {
	return f.refreshErr
}

type summaryFake struct {
	role models.ClientRole
}

func (f *summaryFake) GetClientSummary(ctx context.Context) (*models.ClientSummary, error) {
	return &models.ClientSummary{Client: models.ClientInfo{Slug: "acme", Role: f.role}}, nil
}

func newAuthRouter(fake *authClientFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cacheSvc := service.NewCacheService(nil, nil, 0, zap.NewNop(), false)
	caps := service.NewCapabilityService(&summaryFake{role: models.RoleOwner}, cacheSvc, nil, false, zap.NewNop())
	h := NewAuthHandler(fake, caps)

	r := gin.New()
	r.POST("/auth/telegram", h.Login)
	r.PUT("/auth/telegram", h.DevLogin)
	r.DELETE("/auth/telegram", h.Logout)
	r.POST("/auth/refresh", h.Refresh)
	return r
}

func TestAuthLogin(t *testing.T) {
	fake := &authClientFake{session: &models.SessionInfo{ClientID: 7, Role: models.RoleOwner}}
	router := newAuthRouter(fake)

	body, _ := json.Marshal(models.TelegramLogin{ID: 42, AuthDate: 1700000000, Hash: "abc"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fake.logins, 1)
	assert.Equal(t, int64(42), fake.logins[0].ID)
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	router := newAuthRouter(&authClientFake{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/telegram", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthLoginSurfacesBackendRejection(t *testing.T) {
	fake := &authClientFake{loginErr: appErrors.New("BACKEND_REJECTED", http.StatusBadRequest, "bad widget hash")}
	router := newAuthRouter(fake)

	body, _ := json.Marshal(models.TelegramLogin{ID: 42, AuthDate: 1700000000, Hash: "tampered"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad widget hash")
}

func TestAuthLogout(t *testing.T) {
	fake := &authClientFake{}
	router := newAuthRouter(fake)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/auth/telegram", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, fake.logoutCalls)
}

func TestAuthRefreshFailure(t *testing.T) {
	fake := &authClientFake{refreshErr: appErrors.Clone(appErrors.ErrSessionExpired, "")}
	router := newAuthRouter(fake)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
