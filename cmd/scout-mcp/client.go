package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/use-agent/scout/models"
)

// apiClient calls the curation API on behalf of the MCP tools.
type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newAPIClient(baseURL, apiKey string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		// A scrape drives a browser through several long waits.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

// do sends a request and decodes the JSON answer into out regardless of
// the status code; API errors arrive in the body's error field.
func (c *apiClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func (c *apiClient) scrape(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error) {
	var resp models.ScrapeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/scrape", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *apiClient) staged(ctx context.Context, category string) (*models.StagedResponse, error) {
	path := "/api/v1/staged"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp models.StagedResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *apiClient) importProduct(ctx context.Context, cand models.ImportCandidate) (*models.ImportResponse, error) {
	var resp models.ImportResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/import", cand, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func errorText(fallback string, detail *models.ErrorDetail) string {
	if detail == nil {
		return fallback
	}
	return fmt.Sprintf("[%s] %s", detail.Code, detail.Message)
}
