package dataloader

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Loader fetches a payload for a Request. Failures propagate as errors; no
// retry or backoff is implied by the contract.
type Loader interface {
	Load(ctx context.Context, req Request) (Response, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, req Request) (Response, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// LoaderOptions configures the HTTP loader.
type LoaderOptions struct {
	// Endpoint is the URL every request is sent to; controller, action and
	// params travel as query values.
	Endpoint string

	// HTTPClient allows callers to inject custom HTTP behaviour (proxies,
	// transports). Nil means a fresh client with RequestTimeout.
	HTTPClient *http.Client

	// RequestTimeout caps a single fetch. Zero disables the cap.
	RequestTimeout time.Duration

	// Limiter throttles outgoing requests when set.
	Limiter *rate.Limiter

	// Headers are added to every request.
	Headers map[string]string

	Logger *zap.Logger
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithEndpoint sets the backend URL.
func WithEndpoint(endpoint string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Endpoint = strings.TrimSpace(endpoint)
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps the duration of each fetch.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithRateLimit throttles requests to perSecond with the given burst. A
// non-positive rate disables throttling.
func WithRateLimit(perSecond float64, burst int) LoaderOption {
	return func(opts *LoaderOptions) {
		if perSecond <= 0 {
			opts.Limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		opts.Limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) LoaderOption {
	return func(opts *LoaderOptions) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		opts.Headers[name] = value
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// Construction helpers live in the top-level prodattr package to prevent import cycles.
