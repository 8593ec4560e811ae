package harvest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
)

type ListPropertiesResponse struct {
	Properties []Property `json:"properties"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

type GetPropertyResponse struct {
	Property Property `json:"property"`
}

type Property struct {
	ID                        uint       `json:"id"`
	ShortAddress              string     `json:"shortAddress"`
	PostalCode                string     `json:"postalCode"`
	Neighborhood              string     `json:"neighborhood,omitempty"`
	City                      string     `json:"city,omitempty"`
	Authorized                bool       `json:"authorized"`
	Pending                   bool       `json:"pending"`
	Latitude                  *float64   `json:"latitude,omitempty"`
	Longitude                 *float64   `json:"longitude,omitempty"`
	ApproximativeMaturityDate *time.Time `json:"approximativeMaturityDate,omitempty"`
	Harvests                  int64      `json:"harvests"`
	Owner                     *Owner     `json:"owner,omitempty"`
	CreatedAt                 time.Time  `json:"createdAt"`
	UpdatedAt                 time.Time  `json:"updatedAt"`
}

type Owner struct {
	ID   uint   `json:"id"`
	Type string `json:"type,omitempty"`
	Name string `json:"name"`
}

func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page := getQueryPage(query, defaultPage)
	limit := getQueryLimit(query, defaultLimit)

	opts := port.QueryPropertiesOptions{
		Page:   &page,
		Limit:  &limit,
		Search: query.Get("q"),
	}

	if rawOwnerType := query.Get("ownerType"); rawOwnerType != "" {
		ownerType := model.OwnerType(rawOwnerType)
		if !ownerType.Valid() {
			writeError(w, r, http.StatusBadRequest)
			return
		}

		opts.OwnerType = &ownerType
	}

	properties, total, err := h.propertyStore.QueryProperties(ctx, opts)
	if err != nil {
		slog.ErrorContext(ctx, "could not query properties", slogx.Error(err))
		writeError(w, r, http.StatusInternalServerError)
		return
	}

	res := ListPropertiesResponse{
		Properties: make([]Property, 0, len(properties)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}

	for _, p := range properties {
		res.Properties = append(res.Properties, toProperty(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := getPathID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound)
		return
	}

	property, err := h.propertyStore.GetPropertyByID(ctx, model.PropertyID(id))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, r, http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not retrieve property", slogx.Error(err))
		writeError(w, r, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, GetPropertyResponse{Property: toProperty(property)})
}

func toProperty(p model.Property) Property {
	property := Property{
		ID:                        uint(p.ID()),
		ShortAddress:              p.ShortAddress(),
		PostalCode:                p.PostalCode(),
		Neighborhood:              p.Neighborhood(),
		City:                      p.City(),
		Authorized:                p.Authorized(),
		Pending:                   p.Pending(),
		Latitude:                  p.Latitude(),
		Longitude:                 p.Longitude(),
		ApproximativeMaturityDate: p.ApproximativeMaturityDate(),
		Harvests:                  p.HarvestCount(),
		CreatedAt:                 p.CreatedAt(),
		UpdatedAt:                 p.UpdatedAt(),
	}

	if owner := p.Owner(); owner != nil {
		property.Owner = &Owner{
			ID:   uint(owner.ID()),
			Type: string(owner.Type()),
			Name: owner.DisplayName(),
		}
	}

	return property
}
