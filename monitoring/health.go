package monitoring

import (
	"encoding/json"
	"net/http"
	"time"

	"tinydb/storage"
)

type HealthStatus struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

type ComponentHealth struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type HealthChecker struct {
	storage storage.Storage
}

func NewHealthChecker(storage storage.Storage) *HealthChecker {
	return &HealthChecker{storage: storage}
}

// Check probes the storage backend with a full read. An absent dataset
// is healthy; only a failing read degrades the status.
func (h *HealthChecker) Check() HealthStatus {
	status := HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	start := time.Now()
	_, err := h.storage.Read()
	latency := time.Since(start)

	if err != nil {
		status.Components["storage"] = ComponentHealth{
			Status:  "unhealthy",
			Details: err.Error(),
			Latency: latency.String(),
		}
		status.Status = "degraded"
	} else {
		status.Components["storage"] = ComponentHealth{
			Status:  "healthy",
			Latency: latency.String(),
		}
	}

	return status
}

func (h *HealthChecker) Handler(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")

	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(status)
}
