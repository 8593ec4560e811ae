package http

import (
	"net/http"
	"time"
)

type BasicAuth struct {
	Username string
	Password string
	Realm    string
	// Prefixes of the protected routes
	Prefixes []string
}

type Options struct {
	Address         string
	BaseURL         string
	BasicAuth       *BasicAuth
	Routes          []Route
	ShutdownTimeout time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address:         ":8000",
		BaseURL:         "",
		Routes:          []Route{},
		ShutdownTimeout: 10 * time.Second,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithRoute appends a route. Routes are evaluated in the order they were
// added.
func WithRoute(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Routes = append(opts.Routes, Route{Prefix: prefix, Handler: handler})
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}

// WithBasicAuth protects the routes mounted on the given prefixes.
func WithBasicAuth(username, password string, prefixes ...string) OptionFunc {
	return func(opts *Options) {
		opts.BasicAuth = &BasicAuth{
			Username: username,
			Password: password,
			Realm:    "saskatoon",
			Prefixes: prefixes,
		}
	}
}
