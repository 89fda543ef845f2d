package wordpress

import (
	"errors"
	"fmt"
)

// WordPress-specific errors.
var (
	// ErrEmptyCollection indicates a fetch accumulated nothing at all.
	ErrEmptyCollection = errors.New("wordpress: no items fetched")
)

// APIError represents a WordPress REST API error response.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wordpress: API error %d (URL: %s): %s", e.StatusCode, e.URL, e.Body)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
