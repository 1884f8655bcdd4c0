package requester

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// parseRetryAfter reads a Retry-After value, either delta seconds (possibly
// fractional) or an HTTP date, relative to now. Dates in the past yield 0.
func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, false
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	for _, layout := range []string{http.TimeFormat, time.RFC1123Z, time.RFC850, time.ANSIC} {
		if t, err := time.Parse(layout, v); err == nil {
			return max(t.Sub(now), 0), true
		}
	}
	return 0, false
}

// sleepFor rounds a requested delay up to whole seconds.
func sleepFor(d time.Duration) time.Duration {
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}

// checkRetry retries only 429 and 503 responses that say when to come
// back. Transport errors and everything else surface on the first attempt.
func (r *Requester) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, err
	}
	if !retryable(resp.StatusCode) {
		return false, nil
	}
	delay, ok := parseRetryAfter(resp.Header.Get("Retry-After"), r.now())
	if !ok {
		return false, nil
	}
	if delay > r.opts.MaxRetryDelay {
		return false, &RetryDelayTooLargeError{
			Delay:    delay,
			MaxDelay: r.opts.MaxRetryDelay,
			Cause:    statusError(resp),
		}
	}
	return true, nil
}

func (r *Requester) backoff(_, _ time.Duration, _ int, resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	delay, _ := parseRetryAfter(resp.Header.Get("Retry-After"), r.now())
	return sleepFor(delay)
}

// errorHandler turns the state retryablehttp gives up in into our errors.
// A nil err with a response means retries ran out.
func (r *Requester) errorHandler(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		drain(resp)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("request failed without a response")
	}
	return nil, &RetryLimitExceededError{MaxRetries: r.opts.MaxRetries, Cause: statusError(resp)}
}
