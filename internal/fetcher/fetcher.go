package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// FetchError is returned when the status page cannot be retrieved
type FetchError struct {
	URL    string
	Status string // empty on transport failure
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fetch %s: unexpected response %s", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PageFetcher retrieves the status page
type PageFetcher struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

// NewPageFetcher creates a fetcher for url. timeout bounds each request;
// failed requests are not retried.
func NewPageFetcher(url string, timeout time.Duration, logger *zap.Logger) *PageFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "text/html")

	return &PageFetcher{
		client: client,
		url:    url,
		logger: logger,
	}
}

// Fetch returns the page body decoded to UTF-8
func (f *PageFetcher) Fetch(ctx context.Context) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: err}
	}
	if !res.IsSuccess() {
		return "", &FetchError{URL: f.url, Status: res.Status()}
	}

	contentType := res.Header().Get("Content-Type")
	reader, err := charset.NewReader(bytes.NewReader(res.Body()), contentType)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: fmt.Errorf("failed to detect charset: %w", err)}
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: fmt.Errorf("failed to decode body: %w", err)}
	}

	f.logger.Debug("fetched status page",
		zap.String("url", f.url),
		zap.Int("status", res.StatusCode()),
		zap.String("content_type", contentType),
		zap.Int("body_size", len(body)),
	)

	return string(body), nil
}
