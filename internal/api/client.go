// Package api implements the HTTP client for the waste classification service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/service"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	// DefaultBaseURL is where the service listens in a local setup.
	DefaultBaseURL = "http://localhost:5000"
	// DefaultTimeout bounds classification requests.
	DefaultTimeout = 30 * time.Second
	// DefaultTipsCacheTTL is how long disposal tips are reused.
	DefaultTipsCacheTTL = time.Hour

	imageField       = "image"
	maxResponseBytes = 4 << 20
	requestIDHeader  = "X-Request-ID"
)

// Config configures the service client.
type Config struct {
	HTTPClient   *http.Client
	BaseURL      string
	Timeout      time.Duration
	TipsCacheTTL time.Duration
}

// Client talks to the classification service over HTTP.
type Client struct {
	httpClient *http.Client
	tips       *cache.Cache
	baseURL    *url.URL
}

var _ service.Service = (*Client)(nil)

// NewClient creates a new service client.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %w", common.ErrInvalidConfig, base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https, got %q", common.ErrInvalidConfig, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	ttl := cfg.TipsCacheTTL
	if ttl == 0 {
		ttl = DefaultTipsCacheTTL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    u,
		tips:       cache.New(ttl, 2*ttl),
	}, nil
}

// ClassifyImage uploads an image as a multipart form.
func (c *Client) ClassifyImage(ctx context.Context, image model.Image) (model.Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, imageField, image.Filename))
	header.Set("Content-Type", image.MediaType.MIME())

	part, err := writer.CreatePart(header)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return model.Result{}, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return model.Result{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/classify/image", nil, &body)
	if err != nil {
		return model.Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result model.Result
	if err := c.do(req, &result); err != nil {
		return model.Result{}, err
	}
	return result, nil
}

// ClassifyText submits a trimmed text description.
func (c *Client) ClassifyText(ctx context.Context, text string) (model.Result, error) {
	payload, err := json.Marshal(map[string]string{"text": strings.TrimSpace(text)})
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/classify/text", nil, bytes.NewReader(payload))
	if err != nil {
		return model.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result model.Result
	if err := c.do(req, &result); err != nil {
		return model.Result{}, err
	}
	return result, nil
}

// GetAnalytics fetches the analytics table for a date range.
func (c *Client) GetAnalytics(ctx context.Context, dateRange model.DateRange) (model.Snapshot, error) {
	query := url.Values{}
	query.Set("start_date", dateRange.StartParam())
	query.Set("end_date", dateRange.EndParam())

	req, err := c.newRequest(ctx, http.MethodGet, "/analytics", query, nil)
	if err != nil {
		return model.Snapshot{}, err
	}

	var raw json.RawMessage
	if err := c.do(req, &raw); err != nil {
		return model.Snapshot{}, err
	}

	return model.DecodeSnapshot(raw, dateRange)
}

// GetTips returns disposal tips for a known category. Results are cached.
func (c *Client) GetTips(ctx context.Context, category model.Category) (model.Tips, error) {
	if !category.IsKnown() {
		return model.Tips{}, fmt.Errorf("%w: category must be one of biodegradable, recyclable, hazardous", common.ErrInvalidInput)
	}
	category = model.ParseCategory(string(category))

	if cached, found := c.tips.Get(string(category)); found {
		slog.Debug("Using cached disposal tips", "category", category)
		return cached.(model.Tips), nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/tips/"+url.PathEscape(string(category)), nil, nil)
	if err != nil {
		return model.Tips{}, err
	}

	var tips model.Tips
	if err := c.do(req, &tips); err != nil {
		return model.Tips{}, err
	}
	tips.Category = model.ParseCategory(string(tips.Category))

	c.tips.Set(string(category), tips, cache.DefaultExpiration)
	return tips, nil
}

// Info returns the service banner.
func (c *Client) Info(ctx context.Context) (model.ServiceInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return model.ServiceInfo{}, err
	}

	var info model.ServiceInfo
	if err := c.do(req, &info); err != nil {
		return model.ServiceInfo{}, err
	}
	return info, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// do executes req and decodes a 2xx JSON body into out. Transport failures
// become network errors; non-2xx responses become *common.ServerError.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	slog.Debug("Sending request",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(requestIDHeader))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("request canceled: %w", err)
		}
		return common.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return common.NewNetworkError(fmt.Errorf("failed to read response: %w", err))
	}

	slog.Debug("Received response",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServerError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeServerError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Debug("Non-JSON error body", "status", status, "error", err)
	}
	serverErr := &common.ServerError{
		StatusCode: status,
		Message:    strings.TrimSpace(payload.Error),
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", common.ErrRateLimit, serverErr)
	}
	return serverErr
}
