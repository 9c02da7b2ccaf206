package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// ErrUnavailable marks every failure to talk to the backend: network errors,
// non-2xx responses and undecodable payloads.
var ErrUnavailable = errors.New("backend unavailable")

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// Client exposes the backend operations the dashboard depends on.
type Client interface {
	Fetch(ctx context.Context) (*model.Snapshot, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// HTTPClient implements Client over the backend JSON API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	location   *time.Location
	now        func() time.Time
}

// NewHTTPClient creates a client for baseURL. Timezone-less timestamps are read in loc.
func NewHTTPClient(baseURL string, loc *time.Location, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		location:   loc,
		now:        time.Now,
		httpClient: &http.Client{},
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	u := *c.baseURL
	u.Path = path.Join(append([]string{u.Path}, parts...)...)
	return u.String()
}

// Fetch loads the full dashboard payload.
func (c *HTTPClient) Fetch(ctx context.Context) (*model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/dashboard"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data dashboardPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode dashboard: %w", ErrUnavailable, err)
	}

	snapshot := decodeSnapshot(data, c.now().In(c.location), c.location, c.logger)
	c.logger.Debug("dashboard fetched",
		slog.Int("orders", len(snapshot.Orders)),
		slog.Int("testers", len(snapshot.Testers)),
		slog.Int("activity", len(snapshot.Activity)),
	)
	return snapshot, nil
}

type statusUpdate struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus sets the status of one order on the backend.
func (c *HTTPClient) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	payload, err := json.Marshal(statusUpdate{Status: status})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.endpoint("/api/orders", strconv.FormatInt(orderID, 10)), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	_, err = c.do(req)
	return err
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		c.logger.Error("backend request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", statusErr.Body),
		)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, statusErr)
	}
	return body, nil
}
