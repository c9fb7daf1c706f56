// Package catalog submits curated records to the storefront catalog's
// admin import endpoint.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/models"
)

// DefaultCategory is used for curated categories the catalog does not know.
const DefaultCategory = "scraped"

var categoryMap = map[string]string{
	"all":             DefaultCategory,
	"electronics":     "electronics",
	"jewelery":        "jewelery",
	"mens-clothing":   "men's clothing",
	"womens-clothing": "women's clothing",
}

// MapCategory converts a curation UI category to the catalog's name.
func MapCategory(uiCategory string) string {
	if c, ok := categoryMap[strings.ToLower(strings.TrimSpace(uiCategory))]; ok {
		return c
	}
	return DefaultCategory
}

// Result is the catalog's acknowledgement of one import.
type Result struct {
	ProductID string
	Category  string
}

// SeedReport counts the outcome of a bulk import.
type SeedReport struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// Client talks to the catalog API.
type Client struct {
	cfg    config.CatalogConfig
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client from cfg.
func New(cfg config.CatalogConfig) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default().With("component", "catalog"),
	}
}

// importPayload is the body the admin import endpoint expects.
type importPayload struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	User        string  `json:"user,omitempty"`
}

// Import creates one product in the catalog. Non-2xx answers are
// reported as IMPORT_FAILED carrying the remote message.
func (c *Client) Import(ctx context.Context, cand models.ImportCandidate) (*Result, error) {
	if strings.TrimSpace(cand.Title) == "" || cand.Price <= 0 {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "candidate needs a title and a positive price", nil)
	}
	owner := cand.Owner
	if owner == "" {
		owner = c.cfg.Owner
	}
	payload := importPayload{
		Title:       cand.Title,
		Price:       cand.Price,
		Image:       cand.Image,
		Description: cand.Description,
		Category:    MapCategory(cand.Category),
		User:        owner,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("catalog: marshal candidate: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.ImportPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeImport, "failed to build import request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AdminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeImport, "catalog unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var ack struct {
		ID      string `json:"_id"`
		AltID   string `json:"id"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &ack)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ack.Message
		if msg == "" {
			msg = "Import failed"
		}
		return nil, models.NewScrapeError(models.ErrCodeImport, msg, fmt.Errorf("catalog returned status %d", resp.StatusCode))
	}

	id := ack.ID
	if id == "" {
		id = ack.AltID
	}
	c.logger.Info("product imported", "title", cand.Title, "category", payload.Category, "id", id)
	return &Result{ProductID: id, Category: payload.Category}, nil
}

// Seed imports records one at a time on behalf of owner. Individual
// failures are counted and logged; only context cancellation stops it.
func (c *Client) Seed(ctx context.Context, records []models.ScrapedProduct, owner string) (SeedReport, error) {
	var rep SeedReport
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		cand := models.CandidateFrom(rec)
		cand.Owner = owner
		if _, err := c.Import(ctx, cand); err != nil {
			rep.Failed++
			c.logger.Warn("seed import failed", "title", rec.Title, "error", err)
			continue
		}
		rep.Imported++
	}
	c.logger.Info("seed finished", "imported", rep.Imported, "failed", rep.Failed)
	return rep, nil
}
