// Package http builds the resty client used to download exposition text.
package http

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Opt configures a *resty.Client.
type Opt func(*resty.Client) error

// New creates a resty client. An empty baseURL leaves requests to use
// absolute URLs, which is how metrics endpoints are fetched.
func New(baseURL string, opts ...Opt) (*resty.Client, error) {
	client := resty.New()
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// RetryPolicy bounds retries of failed fetches.
type RetryPolicy struct {
	Count   int           // Retry attempts after the first request
	Wait    time.Duration // Initial backoff
	MaxWait time.Duration // Backoff cap
}

func (p RetryPolicy) isSet() bool {
	return p.Count > 0 || p.Wait > 0 || p.MaxWait > 0
}

// WithRetryPolicy applies the first policy with any field set.
func WithRetryPolicy(policies ...RetryPolicy) Opt {
	return func(c *resty.Client) error {
		for _, policy := range policies {
			if !policy.isSet() {
				continue
			}
			if policy.Count > 0 {
				c.SetRetryCount(policy.Count)
			}
			if policy.Wait > 0 {
				c.SetRetryWaitTime(policy.Wait)
			}
			if policy.MaxWait > 0 {
				c.SetRetryMaxWaitTime(policy.MaxWait)
			}
			return nil
		}
		return nil
	}
}

// WithTimeout sets the request timeout to the first positive value.
func WithTimeout(timeouts ...time.Duration) Opt {
	return func(c *resty.Client) error {
		for _, t := range timeouts {
			if t > 0 {
				c.SetTimeout(t)
				return nil
			}
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header to the first non-empty value.
func WithUserAgent(agents ...string) Opt {
	return func(c *resty.Client) error {
		for _, a := range agents {
			if strings.TrimSpace(a) != "" {
				c.SetHeader("User-Agent", a)
				return nil
			}
		}
		return nil
	}
}
