package harvest

import "net/http"

type Options struct {
	AllowedOrigins []string
	// Middlewares wrap the routes, the first one being the outermost
	Middlewares []func(http.Handler) http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		AllowedOrigins: []string{"*"},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		if len(origins) > 0 {
			opts.AllowedOrigins = origins
		}
	}
}

func WithMiddlewares(middlewares ...func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = append(opts.Middlewares, middlewares...)
	}
}
