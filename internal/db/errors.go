package db

import (
	"errors"
	"fmt"
)

// ErrFetch marks any failure reading from the source tables.
var ErrFetch = errors.New("source fetch failed")

// FetchError reports the page that failed during a paginated read.
type FetchError struct {
	Table  string
	Offset int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s at offset %d: %v", e.Table, e.Offset, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}
