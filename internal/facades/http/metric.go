package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// AcceptHeader asks exporters for the plain text exposition format.
const AcceptHeader = "text/plain;version=0.0.4;q=1,*/*;q=0.1"

// ErrUnexpectedStatus is returned when the metrics endpoint answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// MetricsHTTPFacade downloads exposition text from metrics endpoints.
type MetricsHTTPFacade struct {
	client *resty.Client
}

// NewMetricsHTTPFacade creates a new MetricsHTTPFacade with the given REST client.
func NewMetricsHTTPFacade(client *resty.Client) *MetricsHTTPFacade {
	return &MetricsHTTPFacade{
		client: client,
	}
}

// Fetch performs a GET request against url and returns the response body.
// Errors name the endpoint with its password redacted.
func (f *MetricsHTTPFacade) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", AcceptHeader).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redact(endpoint), err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: %w: %d", redact(endpoint), ErrUnexpectedStatus, resp.StatusCode())
	}

	return resp.Body(), nil
}

// redact hides the password of endpoint. Unparsable input is not echoed.
func redact(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "metrics endpoint"
	}
	return u.Redacted()
}
