package models

import (
	"fmt"
	"time"
)

// ScrapedProduct is one validated search listing. Records are never
// mutated after the extraction pass creates them.
type ScrapedProduct struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// ImportCandidate is a staged record after operator curation, ready to be
// created in the catalog.
type ImportCandidate struct {
	Title       string  `json:"title" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image" binding:"required,url"`
	Description string  `json:"description"`

	// Category is the curated UI category; the catalog client maps it.
	Category string `json:"category"`

	// Owner identifies the importing admin. Filled from the catalog
	// configuration when empty.
	Owner string `json:"owner,omitempty"`
}

// CandidateFrom builds an uncurated ImportCandidate from a staged record.
func CandidateFrom(p ScrapedProduct) ImportCandidate {
	return ImportCandidate{
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
	}
}

// RunResult summarises one pipeline run.
type RunResult struct {
	RunID      string `json:"run_id"`
	SearchTerm string `json:"search_term"`
	Category   string `json:"category"`

	// Extracted is the number of records that passed validation.
	Extracted int `json:"extracted"`

	// Added is the number of extracted records not already in the corpus.
	Added int `json:"added"`

	// Total is the corpus size after the run.
	Total int `json:"total"`

	// Empty marks a run whose extraction produced nothing.
	Empty bool `json:"empty"`

	// Screenshot is set when a diagnostics capture was written.
	Screenshot string `json:"screenshot,omitempty"`

	Products   []ScrapedProduct `json:"products,omitempty"`
	DurationMs int64            `json:"duration_ms"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Summary is the operator-facing outcome line for the run.
func (r *RunResult) Summary() string {
	switch {
	case r.Empty && r.Screenshot != "":
		return fmt.Sprintf("Scraped 0 products. A screenshot has been saved to '%s' for debugging.", r.Screenshot)
	case r.Empty:
		return "Scraped 0 products."
	case r.Added > 0:
		return fmt.Sprintf("Appended %d new unique products. Corpus now contains a total of %d products.", r.Added, r.Total)
	default:
		return "No new unique products found to add."
	}
}
