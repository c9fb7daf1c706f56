package models

import (
	"errors"
	"fmt"
)

// Error codes used by the pipeline, the CLI exit path and API responses.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeBrowserLaunch = "BROWSER_LAUNCH"
	ErrCodeNavigation    = "NAVIGATION_FAILED"
	ErrCodeTimeout       = "SCRAPE_TIMEOUT"
	ErrCodeSearchInput   = "SEARCH_INPUT_MISSING"
	ErrCodeBlocked       = "BLOCKED_OR_NO_RESULTS"
	ErrCodePersistence   = "PERSISTENCE_FAILED"
	ErrCodeImport        = "IMPORT_FAILED"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeRunInProgress = "RUN_IN_PROGRESS"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error

	// Screenshot is the diagnostics file written for this failure, if any.
	Screenshot string
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// CodeOf returns the code of the first ScrapeError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) string {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// AsScrapeError returns err as a *ScrapeError, wrapping foreign errors
// in an INTERNAL_ERROR.
func AsScrapeError(err error) *ScrapeError {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return NewScrapeError(ErrCodeInternal, err.Error(), err)
}

// ScreenshotOf returns the diagnostics screenshot recorded on err's
// ScrapeError, or "" when none was written for it.
func ScreenshotOf(err error) string {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Screenshot
	}
	return ""
}
