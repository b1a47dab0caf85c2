package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a minimal HTTP client for the minutes API, used by the
// sync poller and by operator tooling.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draft is the current draft document for a meeting.
type Draft struct {
	MeetingID      string `json:"meeting_id"`
	Content        string `json:"content"`
	MinutesVersion int    `json:"minutes_version"`
	UpdatedBy      string `json:"updated_by"`
}

// Version is one entry of the version ledger.
type Version struct {
	MeetingID           string `json:"meeting_id"`
	Version             int    `json:"version"`
	Content             string `json:"content"`
	Actor               string `json:"actor"`
	RollbackFromVersion *int   `json:"rollback_from_version,omitempty"`
}

// VersionPage is one page of the version ledger, newest first.
type VersionPage struct {
	Items      []Version `json:"items"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	NextOffset *int      `json:"next_offset"`
	HasMore    bool      `json:"has_more"`
	Total      int       `json:"total"`
}

// ConflictError reports a rejected conditional save together with the
// winning state, so callers can adopt it.
type ConflictError struct {
	CurrentVersion int    `json:"current_version"`
	CurrentContent string `json:"current_content"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("draft conflict: current version is %d", e.CurrentVersion)
}

// APIError is any non-2xx response other than a draft conflict.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// GetDraft fetches the current draft for a meeting.
func (c *Client) GetDraft(ctx context.Context, meetingID string) (*Draft, error) {
	var draft Draft
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/meetings/%s/draft-minutes", meetingID), nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// SaveDraft performs a conditional save against the given base version.
// A *ConflictError carries the winning version and content.
func (c *Client) SaveDraft(ctx context.Context, meetingID, content string, baseVersion int) (*Draft, error) {
	body := map[string]interface{}{
		"content":      content,
		"base_version": baseVersion,
	}
	var draft Draft
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/meetings/%s/draft-minutes", meetingID), body, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// ListVersions fetches one page of the version ledger.
func (c *Client) ListVersions(ctx context.Context, meetingID string, limit, offset int) (*VersionPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	var page VersionPage
	path := fmt.Sprintf("/meetings/%s/draft-minutes/versions?%s", meetingID, query.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Rollback restores a historical version as a new head version.
func (c *Client) Rollback(ctx context.Context, meetingID string, version int) (*Draft, error) {
	body := map[string]interface{}{"version": version}
	var draft Draft
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/meetings/%s/draft-minutes/rollback", meetingID), body, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusConflict {
		var conflict ConflictError
		if err := json.Unmarshal(data, &conflict); err == nil {
			return &conflict
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
