package http

import (
	"net/http"
	"net/url"
	"strings"
)

// Route mounts a handler on a path prefix. The prefix is stripped from the
// request path before the handler is called. An empty prefix mounts the
// handler on the root.
type Route struct {
	Prefix  string
	Handler http.Handler
}

// Matcher is implemented by handlers able to tell whether they serve a
// request, allowing the following routes to be tried when they do not.
type Matcher interface {
	Match(r *http.Request) bool
}

// Router dispatches requests to the first matching route.
type Router struct {
	routes []Route
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, stripped, ok := rt.Resolve(r)
	if ok {
		route.Handler.ServeHTTP(w, stripped)
		return
	}

	if redirect, ok := rt.slashRedirect(r); ok {
		http.Redirect(w, r, redirect, http.StatusMovedPermanently)
		return
	}

	http.NotFound(w, r)
}

// Resolve returns the first route serving the request and the request as
// seen by its handler.
func (rt *Router) Resolve(r *http.Request) (Route, *http.Request, bool) {
	for _, route := range rt.routes {
		stripped, ok := stripPrefix(r, route.Prefix)
		if !ok {
			continue
		}

		if matcher, ok := route.Handler.(Matcher); ok && !matcher.Match(stripped) {
			continue
		}

		return route, stripped, true
	}

	return Route{}, nil, false
}

// slashRedirect returns the path with a trailing slash when it resolves to a
// route, ie "/admin" to "/admin/".
func (rt *Router) slashRedirect(r *http.Request) (string, bool) {
	if strings.HasSuffix(r.URL.Path, "/") {
		return "", false
	}

	withSlash := r.Clone(r.Context())
	withSlash.URL.Path = r.URL.Path + "/"
	withSlash.URL.RawPath = ""

	if _, _, ok := rt.Resolve(withSlash); !ok {
		return "", false
	}

	u := url.URL{Path: withSlash.URL.Path, RawQuery: r.URL.RawQuery}

	return u.String(), true
}

func NewRouter(routes ...Route) *Router {
	return &Router{routes: routes}
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "/"
	}

	return "/" + prefix + "/"
}

func stripPrefix(r *http.Request, prefix string) (*http.Request, bool) {
	prefix = normalizePrefix(prefix)

	if prefix == "/" {
		return r, true
	}

	if !strings.HasPrefix(r.URL.Path, prefix) {
		return nil, false
	}

	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = "/" + strings.TrimPrefix(r.URL.Path, prefix)
	r2.URL.RawPath = ""

	return r2, true
}

var _ http.Handler = &Router{}
