package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

// HealthResponse reports process liveness and build information
type HealthResponse struct {
	Status      string `json:"status"`
	GoVersion   string `json:"goVersion"`
	Timestamp   string `json:"timestamp"`
	Application string `json:"application"`
	InstanceID  string `json:"instanceId"`
	Uptime      string `json:"uptime"`
}

// HealthHandler serves GET /api/health
type HealthHandler struct {
	application string
	instanceID  string
	startedAt   time.Time
	now         func() time.Time
}

// NewHealthHandler creates a health handler; uptime is measured from the moment it is created
func NewHealthHandler(application, instanceID string) *HealthHandler {
	return &HealthHandler{
		application: application,
		instanceID:  instanceID,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	response.JSON(w, http.StatusOK, HealthResponse{
		Status:      "UP",
		GoVersion:   runtime.Version(),
		Timestamp:   now.UTC().Format(time.RFC3339),
		Application: h.application,
		InstanceID:  h.instanceID,
		Uptime:      now.Sub(h.startedAt).Truncate(time.Second).String(),
	})
}
