package harvest

import (
	"net/http"

	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/rs/cors"
)

type Handler struct {
	mux           *http.ServeMux
	handler       http.Handler
	propertyStore port.PropertyStore
	harvestStore  port.HarvestStore
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// Match reports whether one of the harvest routes serves the request.
// Preflight requests match when a route exists for the path.
func (h *Handler) Match(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		probe := r.Clone(r.Context())
		probe.Method = http.MethodGet
		r = probe
	}

	_, pattern := h.mux.Handler(r)
	return pattern != ""
}

func NewHandler(propertyStore port.PropertyStore, harvestStore port.HarvestStore, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		mux:           http.NewServeMux(),
		propertyStore: propertyStore,
		harvestStore:  harvestStore,
	}

	h.mux.HandleFunc("GET /properties", h.handleListProperties)
	h.mux.HandleFunc("GET /properties/{id}", h.handleGetProperty)
	h.mux.HandleFunc("GET /harvests", h.handleListHarvests)
	h.mux.HandleFunc("GET /harvests/{id}", h.handleGetHarvest)

	var handler http.Handler = cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(h.mux)

	for i := len(opts.Middlewares) - 1; i >= 0; i-- {
		handler = opts.Middlewares[i](handler)
	}

	h.handler = handler

	return h
}

var _ http.Handler = &Handler{}
