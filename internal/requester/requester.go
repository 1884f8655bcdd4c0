// Package requester performs GET and HEAD requests that honour Retry-After
// on 429 and 503 responses.
package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"

	"github.com/dorkyrobot/yuri/internal/uris"
)

const (
	DefaultMaxRetries    = 3
	DefaultMaxRetryDelay = 10 * time.Second
	DefaultTimeout       = 10 * time.Second
)

// Options configures a Requester. Zero durations fall back to the defaults;
// MaxRetries is used as given, so start from DefaultOptions.
type Options struct {
	MaxRetries    int
	MaxRetryDelay time.Duration
	Timeout       time.Duration
	UserAgent     string
	// Quiet turns off the per-request "GET <url> returned <code>" line.
	Quiet bool
	// Log defaults to the global zerolog logger.
	Log *zerolog.Logger
	// Transport defaults to a pooled transport with HTTP/2 enabled.
	Transport http.RoundTripper
}

func DefaultOptions() Options {
	return Options{
		MaxRetries:    DefaultMaxRetries,
		MaxRetryDelay: DefaultMaxRetryDelay,
		Timeout:       DefaultTimeout,
	}
}

// Requester is safe for concurrent use.
type Requester struct {
	opts   Options
	log    zerolog.Logger
	client *retryablehttp.Client
	now    func() time.Time
}

func New(opts Options) *Requester {
	if opts.MaxRetryDelay <= 0 {
		opts.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Transport == nil {
		opts.Transport = newTransport()
	}

	r := &Requester{opts: opts, log: log.Logger, now: time.Now}
	if opts.Log != nil {
		r.log = *opts.Log
	}

	r.client = &retryablehttp.Client{
		HTTPClient: &http.Client{
			Transport: opts.Transport,
			Timeout:   opts.Timeout,
		},
		Logger:          leveledLogger{r.log},
		RetryMax:        opts.MaxRetries,
		CheckRetry:      r.checkRetry,
		Backoff:         r.backoff,
		ErrorHandler:    r.errorHandler,
		ResponseLogHook: r.logResponse,
	}
	return r
}

func newTransport() http.RoundTripper {
	t := cleanhttp.DefaultPooledTransport()
	if err := http2.ConfigureTransport(t); err != nil {
		log.Warn().Err(err).Msg("HTTP/2 unavailable, using HTTP/1.1")
	}
	return t
}

// Get returns the body of a 200 response. Any other final status yields a
// *StatusError.
func (r *Requester) Get(ctx context.Context, target string, params url.Values, headers http.Header) ([]byte, error) {
	resp, err := r.GetResponse(ctx, target, params, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// GetResponse returns the final response whatever its status. The caller
// closes the body.
func (r *Requester) GetResponse(ctx context.Context, target string, params url.Values, headers http.Header) (*http.Response, error) {
	return r.do(ctx, http.MethodGet, target, params, headers)
}

// Head returns the final status code. Unlike Get, an unsuccessful status is
// not an error.
func (r *Requester) Head(ctx context.Context, target string, params url.Values, headers http.Header) (int, error) {
	resp, err := r.HeadResponse(ctx, target, params, headers)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (r *Requester) HeadResponse(ctx context.Context, target string, params url.Values, headers http.Header) (*http.Response, error) {
	return r.do(ctx, http.MethodHead, target, params, headers)
}

func (r *Requester) do(ctx context.Context, method, target string, params url.Values, headers http.Header) (*http.Response, error) {
	u, err := URLWithParams(target, params)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", method, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.opts.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", r.opts.UserAgent)
	}
	return r.client.Do(req)
}

// URLWithParams appends the encoded params to target's query, opening one
// if target has none.
func URLWithParams(target string, params url.Values) (string, error) {
	u, err := uris.ParseOrNil(target)
	if err != nil {
		return "", err
	}
	if u == nil || target == "" {
		return "", &uris.Error{Kind: uris.KindInvalidArgument, Message: "url cannot be empty"}
	}
	if len(params) == 0 {
		return u.String(), nil
	}

	sep := "?"
	if u.RawQuery != "" || u.ForceQuery {
		sep = "&"
	}
	return uris.AppendString(u.String(), sep+params.Encode())
}

func (r *Requester) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	if r.opts.Quiet || resp.Request == nil || quiet(resp.Request.Context()) {
		return
	}
	r.log.Info().Msgf("%s %s returned %d", resp.Request.Method, resp.Request.URL, resp.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
}

type quietKey struct{}

// WithQuiet marks requests made with ctx as not worth logging.
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func quiet(ctx context.Context) bool {
	q, _ := ctx.Value(quietKey{}).(bool)
	return q
}

// leveledLogger routes retryablehttp's own chatter to zerolog at debug.
type leveledLogger struct {
	l zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.l.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.l.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.l.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.l.Warn().Fields(kv).Msg(msg) }

var _ retryablehttp.LeveledLogger = leveledLogger{}
