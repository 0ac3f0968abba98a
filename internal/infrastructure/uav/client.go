package uav

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

var _ output.UAVPort = (*Client)(nil)

// Client talks to the remote UAV Control System API. An empty API key
// means USER role; a valid key grants SYSTEM or ADMIN depending on the
// key itself, which only the server knows.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  output.LoggerPort
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	if t.logger != nil {
		args := []any{
			"method", req.Method,
			"url", req.URL.String(),
			"durationMs", time.Since(start).Milliseconds(),
		}
		if resp != nil {
			args = append(args, "status", resp.StatusCode)
		}
		if err != nil {
			args = append(args, "error", err.Error())
			t.logger.Warn("UAV API request failed", args...)
		} else {
			t.logger.Debug("UAV API request", args...)
		}
	}

	return resp, err
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if cfg.Logger != nil {
		transport = &loggingTransport{base: http.DefaultTransport, logger: cfg.Logger}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout, Transport: transport},
		logger:  cfg.Logger,
	}
}

type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body interface{}) (json.RawMessage, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("authentication failed: invalid API key")
	case resp.StatusCode == http.StatusForbidden:
		var apiErr apiError
		detail := "access denied"
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		return nil, fmt.Errorf("permission denied: %s", detail)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var apiErr apiError
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Detail != "" {
			return nil, fmt.Errorf("api request failed: %d %s", resp.StatusCode, apiErr.Detail)
		}
		return nil, fmt.Errorf("api request failed: status %d", resp.StatusCode)
	}

	return json.RawMessage(payload), nil
}

func (c *Client) command(ctx context.Context, droneID, name string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/drones/%s/command/%s", url.PathEscape(droneID), name)
	return c.request(ctx, http.MethodPost, endpoint, query, body)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Drones

func (c *Client) ListDrones(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/drones", nil, nil)
}

func (c *Client) DroneStatus(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/drones/"+url.PathEscape(droneID), nil, nil)
}

func (c *Client) NearbyEntities(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/drones/"+url.PathEscape(droneID)+"/nearby", nil, nil)
}

// Flight commands

func (c *Client) TakeOff(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	query := url.Values{"altitude": {formatFloat(altitude)}}
	return c.command(ctx, droneID, "take_off", query, nil)
}

func (c *Client) Land(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.command(ctx, droneID, "land", nil, nil)
}

func (c *Client) MoveTo(ctx context.Context, droneID string, x, y, z float64) (json.RawMessage, error) {
	query := url.Values{
		"x": {formatFloat(x)},
		"y": {formatFloat(y)},
		"z": {formatFloat(z)},
	}
	return c.command(ctx, droneID, "move_to", query, nil)
}

func (c *Client) MoveAlongPath(ctx context.Context, droneID string, waypoints []entity.Position) (json.RawMessage, error) {
	body := map[string]interface{}{"waypoints": waypoints}
	return c.command(ctx, droneID, "move_along_path", nil, body)
}

func (c *Client) MoveTowards(ctx context.Context, droneID string, distance float64, heading, dz *float64) (json.RawMessage, error) {
	query := url.Values{"distance": {formatFloat(distance)}}
	if heading != nil {
		query.Set("heading", formatFloat(*heading))
	}
	if dz != nil {
		query.Set("dz", formatFloat(*dz))
	}
	return c.command(ctx, droneID, "move_towards", query, nil)
}

func (c *Client) ChangeAltitude(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	query := url.Values{"altitude": {formatFloat(altitude)}}
	return c.command(ctx, droneID, "change_altitude", query, nil)
}

func (c *Client) Hover(ctx context.Context, droneID string, duration *float64) (json.RawMessage, error) {
	query := url.Values{}
	if duration != nil {
		query.Set("duration", formatFloat(*duration))
	}
	return c.command(ctx, droneID, "hover", query, nil)
}

func (c *Client) Rotate(ctx context.Context, droneID string, heading float64) (json.RawMessage, error) {
	query := url.Values{"heading": {formatFloat(heading)}}
	return c.command(ctx, droneID, "rotate", query, nil)
}

func (c *Client) ReturnHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.command(ctx, droneID, "return_home", nil, nil)
}

func (c *Client) SetHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.command(ctx, droneID, "set_home", nil, nil)
}

func (c *Client) Calibrate(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.command(ctx, droneID, "calibrate", nil, nil)
}

func (c *Client) Charge(ctx context.Context, droneID string, chargeAmount float64) (json.RawMessage, error) {
	query := url.Values{"charge_amount": {formatFloat(chargeAmount)}}
	return c.command(ctx, droneID, "charge", query, nil)
}

func (c *Client) TakePhoto(ctx context.Context, droneID string) (json.RawMessage, error) {
	return c.command(ctx, droneID, "take_photo", nil, nil)
}

// Messaging

func (c *Client) SendMessage(ctx context.Context, droneID, targetDroneID, message string) (json.RawMessage, error) {
	query := url.Values{
		"target_drone_id": {targetDroneID},
		"message":         {message},
	}
	return c.command(ctx, droneID, "send_message", query, nil)
}

func (c *Client) Broadcast(ctx context.Context, droneID, message string) (json.RawMessage, error) {
	query := url.Values{"message": {message}}
	return c.command(ctx, droneID, "broadcast", query, nil)
}

// Session

func (c *Client) CurrentSession(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/sessions/current", nil, nil)
}

func (c *Client) SessionData(ctx context.Context, sessionID string) (json.RawMessage, error) {
	if sessionID == "" {
		sessionID = "current"
	}
	return c.request(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID)+"/data", nil, nil)
}

func (c *Client) TaskProgress(ctx context.Context, sessionID string) (json.RawMessage, error) {
	if sessionID == "" {
		sessionID = "current"
	}
	return c.request(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID)+"/task-progress", nil, nil)
}

// Environment

func (c *Client) Weather(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/environments/current", nil, nil)
}

func (c *Client) Targets(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/targets", nil, nil)
}

func (c *Client) Waypoints(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/targets/waypoints", nil, nil)
}

func (c *Client) Obstacles(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/obstacles", nil, nil)
}

// Safety

func (c *Client) CheckPointCollision(ctx context.Context, point entity.Position, safetyMargin float64) (json.RawMessage, error) {
	body := map[string]interface{}{
		"point":         point,
		"safety_margin": safetyMargin,
	}
	return c.request(ctx, http.MethodPost, "/obstacles/collision/check", nil, body)
}

func (c *Client) CheckPathCollision(ctx context.Context, start, end entity.Position, safetyMargin float64) (json.RawMessage, error) {
	body := map[string]interface{}{
		"start":         start,
		"end":           end,
		"safety_margin": safetyMargin,
	}
	return c.request(ctx, http.MethodPost, "/obstacles/collision/path", nil, body)
}
