package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aicockpit/aicockpit/internal/models"
	"github.com/aicockpit/aicockpit/internal/service"
	"github.com/aicockpit/aicockpit/internal/training"
)

const version = "1.0.0"

// HealthHandler handles GET /health with dependency checks
type HealthHandler struct {
	bq    *service.BigQueryService
	store *training.Store
}

func NewHealthHandler(bq *service.BigQueryService, store *training.Store) *HealthHandler {
	return &HealthHandler{bq: bq, store: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	// Short timeout so health checks never hang the endpoint.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.bq != nil {
		if err := h.bq.TestConnection(ctx); err != nil {
			checks["bigquery"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["bigquery"] = "ok"
		}
	} else {
		checks["bigquery"] = "disabled"
	}

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			checks["postgres"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
