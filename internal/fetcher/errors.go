package fetcher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBodyTooLarge is returned when a response body exceeds the fetcher's size cap.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPStatusError reports a non-2xx response from the catalog site or an embed host.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d for %s location=%s", e.StatusCode, e.URL, loc)
}
