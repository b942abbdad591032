package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  *memstore.DB
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the store and logger.
func NewHandler(db *memstore.DB, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string         `json:"status"`
	Store       string         `json:"store"`
	Collections map[string]int `json:"collections,omitempty"`
	Message     string         `json:"message,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "store":"ready", "collections":{"conferences":5, ...} }
//
// On store failure: 503 and
//
//	{ "status":"error", "store":"unavailable", "message":"Store unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health-check: store ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "error",
			Store:   "unavailable",
			Message: "Store unavailable",
			Error:   err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:      "ok",
		Store:       "ready",
		Collections: h.DB.Sizes(),
	})
}
