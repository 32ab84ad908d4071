package address

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Supported scheme constants.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Errors returned by New.
var (
	ErrEmptyAddress      = errors.New("empty metrics address")
	ErrUnsupportedScheme = errors.New("unsupported address scheme")
)

// New parses a metrics endpoint address.
// Default scheme is "http" if not specified.
func New(input string) (*url.URL, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyAddress
	}

	if !strings.Contains(input, "://") {
		input = SchemeHTTP + "://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parse metrics address: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case SchemeHTTP, SchemeHTTPS:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrEmptyAddress, input)
	}

	return u, nil
}
