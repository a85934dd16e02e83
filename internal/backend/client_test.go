package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/contentfactory/panel-api/internal/models"
	"github.com/contentfactory/panel-api/pkg/config"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(config.BackendConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		RefreshPath:    "/auth/refresh/",
		LoginPath:      "/api/auth/telegram",
	}, zap.NewNop(), nil)
	require.NoError(t, err)
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(config.BackendConfig{}, zap.NewNop(), nil)
	require.Error(t, err)
}

func TestListSchedulesDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules/", r.URL.Path)
		assert.Equal(t, "telegram", r.URL.Query().Get("platform"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"post_id":10,"post_title":"a","platform":"telegram","planned_at":"2024-06-10T09:00:00Z","status":"pending"}]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	items, err := client.ListSchedules(context.Background(), models.ScheduleFilter{Platform: "telegram"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, models.SchedulePending, items[0].Status)
}

func TestUnauthorizedTriggersRefreshAndRetry(t *testing.T) {
	var dataCalls, refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			w.WriteHeader(http.StatusOK)
		case "/schedules/":
			if atomic.AddInt32(&dataCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ListSchedules(context.Background(), models.ScheduleFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dataCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	const parallel = 3

	var attempts int32
	var refreshCalls int32
	allUnauthorized := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			// Lag the response so every caller that just saw its 401 joins
			// this attempt instead of starting its own.
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		case "/schedules/":
			if n := atomic.AddInt32(&attempts, 1); n <= parallel {
				if n == parallel {
					close(allUnauthorized)
				}
				// Release the first round of 401s together so the callers
				// fail at the same moment.
				<-allUnauthorized
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	var wg sync.WaitGroup
	errs := make([]error, parallel)
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListSchedules(context.Background(), models.ScheduleFilter{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(parallel*2), atomic.LoadInt32(&attempts))
}

func TestRefreshFailureSurfacesSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ListSchedules(context.Background(), models.ScheduleFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)
}

func TestUnauthorizedOnAuthPathDoesNotRetry(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	require.NoError(t, client.DeleteSchedule(context.Background(), 5))
}

func TestErrorResponsesKeepBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"planned_at is in the past"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.UpdateSchedule(context.Background(), 1, models.ScheduleUpdate{})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "BACKEND_REJECTED", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "planned_at is in the past", appErr.Message)
}

func TestServerErrorsCollapseToBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ListSchedules(context.Background(), models.ScheduleFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBackend.Code, appErrors.FromError(err).Code)
}

func TestMultipartPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", r.FormValue("message"))

		file, header, err := r.FormFile("photo1")
		require.NoError(t, err)
		defer file.Close() //nolint:errcheck
		assert.Equal(t, "pic.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "jpegbytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.VkPhotoPostResult{PostID: 77})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.PostVkWithPhotos(context.Background(), "hello", []VkPhoto{
		{Name: "pic.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("jpegbytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), result.PostID)
}
