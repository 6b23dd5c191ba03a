package httputil

import (
	"fmt"
	"net/http"
)

// StatusError reports a response with an unexpected HTTP status code.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Status returns the human-readable status text, e.g. "Not Found".
func (e *StatusError) Status() string { return http.StatusText(e.Code) }

// CheckStatus returns nil for 200 responses and a [StatusError] otherwise.
// Server errors and 429 responses are wrapped as retryable.
func CheckStatus(url string, code int) error {
	if code == http.StatusOK {
		return nil
	}
	err := &StatusError{Code: code, URL: url}
	if code >= 500 || code == http.StatusTooManyRequests {
		return Retryable(err)
	}
	return err
}
