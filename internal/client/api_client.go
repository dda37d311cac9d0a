// Package client implements the application-side half of the system: a
// typed HTTP client for the lead and list endpoints, the persistence port
// with its remote and local-file adapters, and the Workspace that holds the
// in-memory application state (derived view, selection, credits, saved
// lists and filters).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leadstack/internal/models"
)

// APIClient talks to the lead-manager HTTP API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client for the API at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// LeadsResponse is the GET /api/leads envelope.
type LeadsResponse struct {
	Leads   []models.Lead `json:"leads"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// AddLeadsResponse is the POST /api/leads envelope.
type AddLeadsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ListsResponse is the GET /api/lists envelope.
type ListsResponse struct {
	Lists   []models.SavedList `json:"lists"`
	Success bool               `json:"success"`
}

// SaveListsResponse is the POST /api/lists envelope.
type SaveListsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PingResponse is the GET /api/ping envelope.
type PingResponse struct {
	Message string `json:"message"`
}

// GetLeads fetches the full canonical lead snapshot.
func (c *APIClient) GetLeads(ctx context.Context) ([]models.Lead, error) {
	var resp LeadsResponse
	if err := c.get(ctx, "/api/leads", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("leads request failed: %s", resp.Error)
	}
	return resp.Leads, nil
}

// AddLeads appends leads to the canonical store. The server reassigns ids.
func (c *APIClient) AddLeads(ctx context.Context, leads []models.Lead) (int, error) {
	var resp AddLeadsResponse
	err := c.post(ctx, "/api/leads", map[string]interface{}{"leads": leads}, &resp)
	if err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("add leads failed: %s", resp.Message)
	}
	return resp.Count, nil
}

// GetLists fetches every saved list.
func (c *APIClient) GetLists(ctx context.Context) ([]models.SavedList, error) {
	var resp ListsResponse
	if err := c.get(ctx, "/api/lists", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("lists request failed")
	}
	if resp.Lists == nil {
		return []models.SavedList{}, nil
	}
	return resp.Lists, nil
}

// SaveLists replaces the stored lists wholesale.
func (c *APIClient) SaveLists(ctx context.Context, lists []models.SavedList) error {
	if lists == nil {
		lists = []models.SavedList{}
	}
	var resp SaveListsResponse
	err := c.post(ctx, "/api/lists", map[string]interface{}{"lists": lists}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("save lists failed: %s", resp.Message)
	}
	return nil
}

// Ping checks server liveness and returns the configured ping message.
func (c *APIClient) Ping(ctx context.Context) (string, error) {
	var resp PingResponse
	if err := c.get(ctx, "/api/ping", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *APIClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}

	// Error envelopes are still JSON; decode before checking the status so
	// the caller sees the server's message.
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected response from %s (status %d): %w", req.URL.Path, resp.StatusCode, err)
	}

	return nil
}
