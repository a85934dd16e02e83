package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/contentfactory/panel-api/pkg/config"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

const (
	accessTokenCookie = "access_token"
	refreshKey        = "refresh"
	maxErrorBodyLen   = 2048
)

// Observer receives backend round-trip timings. Implemented by the metrics
// service; optional.
type Observer interface {
	ObserveBackendRequest(method, path string, status int, duration time.Duration)
}

// Client wraps the credentialed session against the remote content backend.
// All panel traffic funnels through do, which owns JSON encoding, cookie
// credentials and the transparent access-token refresh.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
	observer    Observer
	refreshPath string
	loginPath   string
	refreshSkew time.Duration

	// At most one refresh is in flight at a time; concurrent 401s share the
	// same result.
	refreshGroup singleflight.Group
}

// New builds a backend client with its own cookie jar.
func New(cfg config.BackendConfig, logger *zap.Logger, observer Observer) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	refreshPath := cfg.RefreshPath
	if refreshPath == "" {
		refreshPath = "/auth/refresh/"
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/api/auth/telegram"
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		logger:      logger,
		observer:    observer,
		refreshPath: refreshPath,
		loginPath:   loginPath,
		refreshSkew: cfg.RefreshSkew,
	}, nil
}

// MultipartFile is one file part of a multipart request body.
type MultipartFile struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// MultipartBody is passed through as multipart/form-data instead of JSON.
type MultipartBody struct {
	Fields map[string]string
	Files  []MultipartFile
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one backend round trip. A 401 from any endpoint other than the
// auth endpoints triggers a shared refresh and a single retry of the original
// request; a failed refresh surfaces ErrSessionExpired so the handler layer
// can redirect to login.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
	}

	if !c.isAuthPath(path) && c.accessTokenExpiring() {
		// Refresh ahead of the deadline so the request does not burn its
		// retry on a predictable 401.
		if err := c.refreshSession(ctx); err != nil {
			return appErrors.Clone(appErrors.ErrSessionExpired, "")
		}
	}

	status, respBody, err := c.roundTrip(ctx, method, path, query, payload, contentType)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !c.isAuthPath(path) {
		if err := c.refreshSession(ctx); err != nil {
			return appErrors.Clone(appErrors.ErrSessionExpired, "")
		}
		status, respBody, err = c.roundTrip(ctx, method, path, query, payload, contentType)
		if err != nil {
			return err
		}
	}

	if status == http.StatusNoContent {
		return nil
	}
	if status < 200 || status >= 300 {
		return c.errorFromResponse(method, path, status, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "decode backend response")
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build backend request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return 0, nil, appErrors.Wrap(err, appErrors.ErrBackendUnavailable.Code, appErrors.ErrBackendUnavailable.Status, appErrors.ErrBackendUnavailable.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	if c.observer != nil {
		c.observer.ObserveBackendRequest(method, path, resp.StatusCode, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "read backend response")
	}
	return resp.StatusCode, respBody, nil
}

// refreshSession runs the refresh call, collapsing concurrent callers into a
// single in-flight attempt whose outcome they all share.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do(refreshKey, func() (interface{}, error) {
		status, respBody, err := c.roundTrip(ctx, http.MethodPost, c.refreshPath, nil, nil, "")
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			c.logger.Info("session refresh rejected", zap.Int("status", status))
			return nil, c.errorFromResponse(http.MethodPost, c.refreshPath, status, respBody)
		}
		return nil, nil
	})
	return err
}

func (c *Client) isAuthPath(path string) bool {
	return path == c.refreshPath || strings.HasPrefix(path, c.loginPath)
}

// accessTokenExpiring inspects the access-token cookie without verifying its
// signature; only the exp claim matters to the client.
func (c *Client) accessTokenExpiring() bool {
	if c.refreshSkew <= 0 || c.httpClient.Jar == nil {
		return false
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	for _, cookie := range c.httpClient.Jar.Cookies(base) {
		if cookie.Name != accessTokenCookie {
			continue
		}
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(cookie.Value, claims); err != nil {
			return false
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return false
		}
		return time.Until(exp.Time) < c.refreshSkew
	}
	return false
}

func (c *Client) errorFromResponse(method, path string, status int, body []byte) error {
	message := ""
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		message = parsed.Error
	}

	e := appErrors.FromBackend(status, message)
	raw := body
	if len(raw) > maxErrorBodyLen {
		raw = raw[:maxErrorBodyLen]
	}
	e.Err = fmt.Errorf("%s %s: status %d: %s", method, path, status, string(raw))
	return e
}

var partNameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// filePartHeader builds the MIME header for one file part, carrying the
// file's declared content type instead of the octet-stream default.
func filePartHeader(file MultipartFile) textproto.MIMEHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		partNameEscaper.Replace(file.Field), partNameEscaper.Replace(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	return header
}

func encodeBody(body interface{}) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	if mp, ok := body.(*MultipartBody); ok {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for field, value := range mp.Fields {
			if err := writer.WriteField(field, value); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", field, err)
			}
		}
		for _, file := range mp.Files {
			part, err := writer.CreatePart(filePartHeader(file))
			if err != nil {
				return nil, "", fmt.Errorf("create form file %s: %w", file.Name, err)
			}
			if _, err := io.Copy(part, file.Reader); err != nil {
				return nil, "", fmt.Errorf("copy form file %s: %w", file.Name, err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("finalise multipart body: %w", err)
		}
		return buf.Bytes(), writer.FormDataContentType(), nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return payload, "application/json", nil
}
