package models

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	Success bool       `json:"success"`
	Result  *RunResult `json:"result,omitempty"`

	// CacheStatus is "hit", "miss", or empty when caching was not requested.
	CacheStatus string `json:"cache_status,omitempty"`

	// Message is the operator-facing summary of the run.
	Message string `json:"message,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// StagedResponse is the response for GET /api/v1/staged.
type StagedResponse struct {
	Success  bool             `json:"success"`
	Total    int              `json:"total"`
	Products []ScrapedProduct `json:"products"`

	// NearDuplicates lists title pairs that look alike but were kept
	// because they are not exact matches.
	NearDuplicates []NearDuplicate `json:"near_duplicates,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// NearDuplicate is a pair of staged titles with a small SimHash distance.
type NearDuplicate struct {
	First    string `json:"first"`
	Second   string `json:"second"`
	Distance int    `json:"distance"`
}

// ImportResponse is the response for POST /api/v1/import.
type ImportResponse struct {
	Success bool `json:"success"`

	// ProductID is the catalog identifier returned by the importer.
	ProductID string `json:"product_id,omitempty"`

	// Category is the catalog category the record was filed under.
	Category string `json:"category,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorResponse is used by middleware that aborts before a handler runs.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy" or "busy"
	Uptime  string `json:"uptime"`
	Running bool   `json:"running"`
	LastRun string `json:"last_run,omitempty"`
	Version string `json:"version"`
}
