package echonet

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/ports"
)

const (
	DefaultDeviceType     = "homeAirConditioner"
	DefaultReloadInterval = time.Second
)

// StatusError is returned for non-2xx responses of the device API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ECHONET API error: %s %s: %d", e.Method, e.Path, e.StatusCode)
}

type Options struct {
	DeviceType     string
	ReloadInterval time.Duration
	HTTPClient     *http.Client
	Logger         *zap.Logger
}

// Client talks to an ECHONET Lite web API. It holds no device state.
type Client struct {
	baseURL        string
	authorization  string
	deviceType     string
	reloadInterval time.Duration
	httpClient     *http.Client
	logger         *zap.Logger
}

var _ ports.DeviceAPI = (*Client)(nil)

func NewClient(baseURL, authorization string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ECHONET API url is required")
	}
	if authorization == "" {
		return nil, fmt.Errorf("ECHONET API authorization is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid ECHONET API url: %w", err)
	}

	c := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		authorization:  authorization,
		deviceType:     opts.DeviceType,
		reloadInterval: opts.ReloadInterval,
		httpClient:     opts.HTTPClient,
		logger:         opts.Logger,
	}
	if c.deviceType == "" {
		c.deviceType = DefaultDeviceType
	}
	if c.reloadInterval <= 0 {
		c.reloadInterval = DefaultReloadInterval
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

type device struct {
	ID         model.DeviceID `json:"id"`
	DeviceType string         `json:"deviceType"`
}

func (c *Client) ListDeviceIDs(ctx context.Context) ([]model.DeviceID, error) {
	var devices []device
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &devices); err != nil {
		return nil, err
	}

	ids := make([]model.DeviceID, 0, len(devices))
	for _, d := range devices {
		if d.DeviceType == c.deviceType {
			ids = append(ids, d.ID)
		}
	}
	return ids, nil
}

func (c *Client) GetProperties(ctx context.Context, id model.DeviceID) (*model.DeviceProperties, error) {
	var props model.DeviceProperties
	if err := c.do(ctx, http.MethodGet, devicePath(id, "properties"), nil, &props); err != nil {
		return nil, err
	}
	return &props, nil
}

func (c *Client) UpdateProperties(ctx context.Context, id model.DeviceID, update *model.PropertiesUpdate) error {
	return c.do(ctx, http.MethodPut, devicePath(id, "properties"), update, nil)
}

// ReloadProperties asks the device to re-read each property, pausing the
// reload interval before every request.
func (c *Client) ReloadProperties(ctx context.Context, id model.DeviceID, names ...model.PropertyName) error {
	for _, name := range names {
		timer := time.NewTimer(c.reloadInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if err := c.do(ctx, http.MethodPut, devicePath(id, "properties", string(name), "request"), struct{}{}, nil); err != nil {
			return err
		}
	}
	return nil
}

func devicePath(id model.DeviceID, elem ...string) string {
	parts := append([]string{"/devices", url.PathEscape(id)}, elem...)
	return strings.Join(parts, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept-Language", "ja-jp")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Authorization", c.authorization)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("ECHONET API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}

	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer gz.Close()
		r = gz
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
