package scraper

import (
	"errors"
	"fmt"
)

// ErrLayout is returned when a page does not contain the expected table structure
var ErrLayout = errors.New("unexpected page layout")

// StatusError reports a non-200 response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Code, e.URL)
}
