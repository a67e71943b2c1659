package health

import (
	"encoding/json"
	"net/http"

	"github.com/mamaai/mamaai-backend/internal/platform/timeutil"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Time    timeutil.Time `json:"time"`
}

// Handler returns a plain HTTP handler for liveness probes. It bypasses the
// API layer so probes keep working independently of content negotiation.
func Handler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{
			Status:  "healthy",
			Version: version,
			Time:    timeutil.Now(),
		})
	}
}
