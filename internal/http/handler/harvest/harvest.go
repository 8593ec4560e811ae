package harvest

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
)

type ListHarvestsResponse struct {
	Harvests []Harvest `json:"harvests"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type GetHarvestResponse struct {
	Harvest Harvest `json:"harvest"`
}

type Harvest struct {
	ID           uint       `json:"id"`
	Status       string     `json:"status"`
	PropertyID   *uint      `json:"propertyId,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	About        string     `json:"about,omitempty"`
	Participants int64      `json:"participants"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (h *Handler) handleListHarvests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page := getQueryPage(query, defaultPage)
	limit := getQueryLimit(query, defaultLimit)

	opts := port.QueryHarvestsOptions{
		Page:  &page,
		Limit: &limit,
	}

	if rawPropertyID := query.Get("property"); rawPropertyID != "" {
		id, err := strconv.ParseUint(rawPropertyID, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest)
			return
		}

		propertyID := model.PropertyID(id)
		opts.PropertyID = &propertyID
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		status := model.HarvestStatus(rawStatus)
		if !status.Valid() {
			writeError(w, r, http.StatusBadRequest)
			return
		}

		opts.Status = &status
	}

	harvests, total, err := h.harvestStore.QueryHarvests(ctx, opts)
	if err != nil {
		slog.ErrorContext(ctx, "could not query harvests", slogx.Error(err))
		writeError(w, r, http.StatusInternalServerError)
		return
	}

	res := ListHarvestsResponse{
		Harvests: make([]Harvest, 0, len(harvests)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	for _, hv := range harvests {
		res.Harvests = append(res.Harvests, toHarvest(hv))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleGetHarvest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := getPathID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound)
		return
	}

	harvest, err := h.harvestStore.GetHarvestByID(ctx, model.HarvestID(id))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, r, http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not retrieve harvest", slogx.Error(err))
		writeError(w, r, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, GetHarvestResponse{Harvest: toHarvest(harvest)})
}

func toHarvest(h model.Harvest) Harvest {
	harvest := Harvest{
		ID:           uint(h.ID()),
		Status:       string(h.Status()),
		StartDate:    h.StartDate(),
		EndDate:      h.EndDate(),
		About:        h.About(),
		Participants: h.Participants(),
		CreatedAt:    h.CreatedAt(),
		UpdatedAt:    h.UpdatedAt(),
	}

	if propertyID := h.PropertyID(); propertyID != nil {
		id := uint(*propertyID)
		harvest.PropertyID = &id
	}

	return harvest
}
