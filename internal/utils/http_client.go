package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so adapters can share one configured
// transport.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with JSON defaults.
//
// A non-empty baseURL is applied to every relative request path and a
// positive timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if baseURL != "" {
		c.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
