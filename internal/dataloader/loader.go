package dataloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	pkgdataloader "github.com/goliatone/go-prodattr/pkg/dataloader"
)

const tracerName = "github.com/goliatone/go-prodattr/dataloader"

// Loader implements pkgdataloader.Loader over HTTP GET requests.
type Loader struct {
	endpoint *url.URL
	endErr   error
	http     *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	headers  map[string]string
	logger   *zap.Logger
	tracer   trace.Tracer
}

// Ensure the implementation satisfies the public interface.
var _ pkgdataloader.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. An invalid endpoint is
// reported on the first Load rather than here so construction stays
// infallible, mirroring the public constructor.
func New(options pkgdataloader.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Loader{
		http:    httpClient,
		timeout: timeout,
		limiter: options.Limiter,
		headers: copyHeaders(options.Headers),
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
	l.endpoint, l.endErr = parseEndpoint(options.Endpoint)
	return l
}

// Load fetches the payload for req.
func (l *Loader) Load(ctx context.Context, req pkgdataloader.Request) (pkgdataloader.Response, error) {
	if err := req.Validate(); err != nil {
		return pkgdataloader.Response{}, err
	}
	if l.endErr != nil {
		return pkgdataloader.Response{}, l.endErr
	}

	ctx, span := l.tracer.Start(ctx, "dataloader.Load",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("prodattr.controller", req.Controller),
			attribute.String("prodattr.action", req.Action),
		),
	)
	defer span.End()

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rate limit wait")
			return pkgdataloader.Response{}, fmt.Errorf("dataloader: rate limit: %w", err)
		}
	}

	started := time.Now()
	data, err := loadHTTP(ctx, l.http, l.endpoint, req.Query(), l.headers, l.timeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.logger.Warn("backend request failed",
			zap.String("request", req.String()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return pkgdataloader.Response{}, err
	}

	span.SetAttributes(attribute.Int("prodattr.response_bytes", len(data)))
	l.logger.Debug("backend request completed",
		zap.String("request", req.String()),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(data)))
	return pkgdataloader.NewResponse(data), nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("dataloader: endpoint is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataloader: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("dataloader: unsupported endpoint scheme %q", parsed.Scheme)
	}
	return parsed, nil
}

func copyHeaders(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
