package requester

import (
	"fmt"
	"net/http"
	"time"
)

// StatusError is returned by Get when the final response is not 200 OK.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "(Unknown)"
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, text)
}

// RetryDelayTooLargeError means the server asked for a longer wait than
// Options.MaxRetryDelay allows. It wraps the StatusError of the response
// that carried the Retry-After header.
type RetryDelayTooLargeError struct {
	Delay    time.Duration
	MaxDelay time.Duration
	Cause    *StatusError
}

func (e *RetryDelayTooLargeError) Error() string {
	return fmt.Sprintf("retry delay of %gs exceeds limit of %gs", e.Delay.Seconds(), e.MaxDelay.Seconds())
}

func (e *RetryDelayTooLargeError) Unwrap() error {
	return e.Cause
}

// RetryLimitExceededError means the server kept answering with a retryable
// status after Options.MaxRetries retries.
type RetryLimitExceededError struct {
	MaxRetries int
	Cause      *StatusError
}

func (e *RetryLimitExceededError) Error() string {
	return fmt.Sprintf("retry limit (%d) exceeded", e.MaxRetries)
}

func (e *RetryLimitExceededError) Unwrap() error {
	return e.Cause
}

func statusError(resp *http.Response) *StatusError {
	e := &StatusError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.String()
	}
	return e
}
