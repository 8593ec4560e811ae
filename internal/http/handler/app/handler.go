package app

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/bornholm/saskatoon/internal/http/handler/app/component"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	mux   *http.ServeMux
	links []component.Link
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Match reports whether one of the application routes serves the request.
func (h *Handler) Match(r *http.Request) bool {
	_, pattern := h.mux.Handler(r)
	return pattern != ""
}

func (h *Handler) getIndexPage(w http.ResponseWriter, r *http.Request) {
	vmodel := component.IndexPageVModel{
		Title: "Saskatoon",
		Links: h.links,
	}

	templ.Handler(component.IndexPage(vmodel)).ServeHTTP(w, r)
}

func (h *Handler) getHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func NewHandler(links ...component.Link) *Handler {
	h := &Handler{
		mux:   http.NewServeMux(),
		links: links,
	}

	h.mux.HandleFunc("GET /{$}", h.getIndexPage)
	h.mux.HandleFunc("GET /healthz", h.getHealthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return h
}

var _ http.Handler = &Handler{}
