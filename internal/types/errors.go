package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrMissingColumns marks a persisted dataset that lacks the required
	// headline/source columns. Such an input is skipped wholesale, not
	// partially used.
	ErrMissingColumns = errors.New("dataset missing required columns")

	// ErrBrowserUnavailable means no local Chromium could be found, so
	// paginated extraction degrades to a single-page parse.
	ErrBrowserUnavailable = errors.New("browser automation unavailable")
)

// FetchError wraps errors that occur while fetching a source page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// ParseError wraps errors that occur while extracting headlines from markup.
type ParseError struct {
	Source Source
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for source %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StoreError wraps errors from a dataset store backend.
type StoreError struct {
	Backend string
	Path    string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store error (%s, %s): %v", e.Backend, e.Path, e.Err)
	}
	return fmt.Sprintf("store error (%s): %v", e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
