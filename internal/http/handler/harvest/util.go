package harvest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/metrics"
)

const (
	defaultPage  = 0
	defaultLimit = 10
	maxLimit     = 100
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func getQueryPage(query url.Values, defaultValue int) int {
	return max(getQueryInt(query, "page", defaultValue), 0)
}

func getQueryLimit(query url.Values, defaultValue int) int {
	limit := getQueryInt(query, "limit", defaultValue)
	if limit <= 0 {
		return defaultValue
	}

	return min(limit, maxLimit)
}

func getQueryInt(query url.Values, name string, defaultValue int) int {
	raw := query.Get(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return defaultValue
	}

	return int(value)
}

func getPathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, res any) {
	metrics.APIRequests.With(map[string]string{
		metrics.LabelEndpoint: r.Pattern,
		metrics.LabelStatus:   strconv.Itoa(statusCode),
	}).Inc()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int) {
	writeJSON(w, r, statusCode, ErrorResponse{Message: http.StatusText(statusCode)})
}
