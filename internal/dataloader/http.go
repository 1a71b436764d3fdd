package dataloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, endpoint *url.URL, query url.Values, headers map[string]string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("dataloader: http client is not configured")
	}
	if endpoint == nil {
		return nil, errors.New("dataloader: endpoint is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := *endpoint
	merged := target.Query()
	for key, values := range query {
		merged[key] = values
	}
	target.RawQuery = merged.Encode()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataloader: unexpected status %s", e.Status)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}
