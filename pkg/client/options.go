package client

import (
	"net/http"
	"net/url"
	"time"
)

type Options struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

type OptionFunc func(opts *Options)

func WithBaseURL(baseURL *url.URL) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = httpClient
	}
}

// WithRetries sets the number of retries of the rate limited requests of the
// default http client.
func WithRetries(maxRetries int, defaultWait time.Duration) OptionFunc {
	return func(opts *Options) {
		transport, ok := opts.HTTPClient.Transport.(*RateLimitTransport)
		if !ok {
			return
		}

		transport.MaxRetries = maxRetries
		transport.DefaultWait = defaultWait
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BaseURL: &url.URL{
			Scheme: "http",
			Host:   "localhost:8000",
		},
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &RateLimitTransport{
				Base:        http.DefaultTransport,
				MaxRetries:  5,
				DefaultWait: time.Second,
			},
		},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
