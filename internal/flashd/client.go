package flashd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNoDrives is returned by StartFlash when no target device is given.
var ErrNoDrives = errors.New("no target drives selected")

// StatusFetcher defines the daemon calls the poller needs.
// This interface is implemented by *Client and can be used for testing.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (*Status, error)
	FetchDrives(ctx context.Context) ([]Drive, error)
}

// Ensure Client implements StatusFetcher at compile time.
var _ StatusFetcher = (*Client)(nil)

// Client talks to the flashing daemon's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	dialer    *websocket.Dialer
	userAgent string
}

const (
	defaultDaemonAddr = "127.0.0.1:7489"
	defaultUserAgent  = "etcher-tui/0.1"
	requestTimeout    = 5 * time.Second
	streamPath        = "/api/flash/stream"
)

// NewClient builds a Client using the provided host:port value.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchStatus retrieves the current flash session status.
func (c *Client) FetchStatus(ctx context.Context) (*Status, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Status
	if err := c.do(ctx, http.MethodGet, "/api/flash/state", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchDrives retrieves the drives available as flash targets or sources.
func (c *Client) FetchDrives(ctx context.Context) ([]Drive, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload DriveListResponse
	if err := c.do(ctx, http.MethodGet, "/api/drives", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Drives, nil
}

// StartFlash asks the daemon to write the image to the given devices.
func (c *Client) StartFlash(ctx context.Context, req FlashRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(req.Devices) == 0 {
		return ErrNoDrives
	}
	if strings.TrimSpace(req.Image) == "" {
		return fmt.Errorf("image path required")
	}
	return c.do(ctx, http.MethodPost, "/api/flash", req, nil)
}

// CancelFlash aborts the running flash session.
func (c *Client) CancelFlash(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, "/api/flash/cancel", nil, nil)
}

// Stream delivers status updates pushed by the daemon until ctx is done or
// the connection fails. The returned error is nil only when ctx ended the
// stream.
func (c *Client) Stream(ctx context.Context, fn func(Status)) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	wsURL := *c.baseURL
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}
	wsURL.Path = streamPath

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	conn, resp, err := c.dialer.DialContext(ctx, wsURL.String(), header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	for {
		var status Status
		if err := conn.ReadJSON(&status); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read stream: %w", err)
		}
		fn(status)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultDaemonAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse daemon addr %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
