package httpapi

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx answer from the upstream API.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsStatus reports whether err carries an upstream answer with the given status code.
func IsStatus(err error, statusCode int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == statusCode
}

// APIError is a 2xx envelope whose error member is set and whose data is missing.
type APIError struct {
	Endpoint string
	Detail   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: api error: %s", e.Endpoint, e.Detail)
}
