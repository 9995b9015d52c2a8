package ingest

import (
	"errors"
	"time"

	"bookcatalog/internal/platform/googlebooks"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

var (
	// ErrHostNotAllowed is returned before any request or run record when the
	// source URL is outside the allow-list.
	ErrHostNotAllowed = googlebooks.ErrHostNotAllowed
	ErrFetchFailed    = errors.New("fetch failed")
)

// Run is one recorded import attempt.
type Run struct {
	ID            string     `json:"id"`
	SourceURL     string     `json:"source_url"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	Status        string     `json:"status"`
	ItemsFetched  int        `json:"items_fetched"`
	BooksCreated  int        `json:"books_created"`
	BooksExisting int        `json:"books_existing"`
	ItemsFailed   int        `json:"items_failed"`
	Error         string     `json:"error,omitempty"`
}

// Result is what the caller of an import sees. Created is the number of
// items that produced a new book; Reason is set when the fetch failed.
type Result struct {
	RunID    string `json:"run_id"`
	Fetched  int    `json:"fetched"`
	Created  int    `json:"created"`
	Existing int    `json:"existing"`
	Failed   int    `json:"failed"`
	Reason   string `json:"reason,omitempty"`
}
