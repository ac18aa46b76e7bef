package health

import (
	"encoding/json"
	"net/http"

	applog "github.com/janisto/secure-hello/internal/platform/logging"
)

// StatusHealthy is the only status the service reports.
const StatusHealthy = "healthy"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler is a plain HTTP handler for the health check endpoint.
// It stays outside the OpenAPI surface so probes bypass content negotiation.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Status: StatusHealthy}); err != nil {
		applog.LogWarn(r.Context(), "failed to write health response")
	}
}
