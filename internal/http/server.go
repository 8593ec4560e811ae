package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/pkg/errors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler {
	routes := make([]Route, 0, len(s.opts.Routes))

	for _, route := range s.opts.Routes {
		if s.opts.BasicAuth != nil && slices.Contains(s.opts.BasicAuth.Prefixes, route.Prefix) {
			route.Handler = &protectedHandler{
				Handler: basicAuth(s.opts.BasicAuth, route.Prefix, route.Handler),
				next:    route.Handler,
			}
		}

		routes = append(routes, route)
	}

	var handler http.Handler = NewRouter(routes...)

	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(slog.Default())(handler)

	return handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", slog.String("address", s.opts.Address))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}

// protectedHandler keeps the matching behavior of the handler it guards.
type protectedHandler struct {
	http.Handler
	next http.Handler
}

// Match implements [Matcher].
func (h *protectedHandler) Match(r *http.Request) bool {
	if matcher, ok := h.next.(Matcher); ok {
		return matcher.Match(r)
	}

	return true
}

var _ Matcher = &protectedHandler{}
