package handlers

import "net/http"

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		h.Log.Warn(r.Context(), "health check failed", "error", err)
		writeSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}
