package admin

import (
	"context"

	"github.com/gorilla/sessions"
)

// ChangeFunc is called after a record was added, changed or deleted.
type ChangeFunc func(ctx context.Context, app string, model string, action string)

type Options struct {
	// Prefix is the absolute path the site is mounted on
	Prefix      string
	Title       string
	PerPage     int
	Sessions    sessions.Store
	SessionName string
	OnChange    []ChangeFunc
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Prefix:      "/admin/",
		Title:       "Saskatoon administration",
		PerPage:     100,
		SessionName: "saskatoon_admin",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithTitle(title string) OptionFunc {
	return func(opts *Options) {
		opts.Title = title
	}
}

func WithPerPage(perPage int) OptionFunc {
	return func(opts *Options) {
		opts.PerPage = perPage
	}
}

// WithSessions enables flash messages stored in the given session store.
func WithSessions(store sessions.Store, name string) OptionFunc {
	return func(opts *Options) {
		opts.Sessions = store
		if name != "" {
			opts.SessionName = name
		}
	}
}

// WithOnChange registers functions called after each successful add, change
// or delete.
func WithOnChange(funcs ...ChangeFunc) OptionFunc {
	return func(opts *Options) {
		opts.OnChange = append(opts.OnChange, funcs...)
	}
}
