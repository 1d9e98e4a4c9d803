package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// workloadID parses the {id} route parameter
func workloadID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// ListWorkloads handles GET /api/workloads
func (h *Handler) ListWorkloads(w http.ResponseWriter, r *http.Request) {
	workloads, err := h.service.ListWorkloads(r.Context())
	if err != nil {
		h.logger.Error("failed to list workloads",
			slog.String("error", err.Error()),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to list workloads")
		return
	}

	h.respondJSON(w, http.StatusOK, workloads)
}

// GetWorkload handles GET /api/workloads/{id}
func (h *Handler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	id, err := workloadID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid workload id")
		return
	}

	workload, err := h.service.GetWorkload(r.Context(), id)
	if err != nil {
		h.logger.Warn("failed to get workload",
			slog.String("workload_id", id.String()),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, workload)
}

// RegisterWorkload handles POST /api/workloads
func (h *Handler) RegisterWorkload(w http.ResponseWriter, r *http.Request) {
	var input model.Workload
	if err := h.decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.service.RegisterWorkload(r.Context(), actorFrom(r), input)
	if err != nil {
		h.logger.Warn("failed to register workload",
			slog.String("workload", input.Name),
			slog.String("region", input.RegionID),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

// GetOpportunity handles GET /api/workloads/{id}/opportunity with an
// optional ?preview=<regionID> to simulate a specific alternative.
func (h *Handler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := workloadID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid workload id")
		return
	}

	preview := r.URL.Query().Get("preview")
	opportunity, err := h.service.WorkloadOpportunity(r.Context(), id, preview)
	if err != nil {
		h.logger.Warn("failed to compute opportunity",
			slog.String("workload_id", id.String()),
			slog.String("preview", preview),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, opportunity)
}

// shiftRequest is the POST /api/workloads/{id}/shift body
type shiftRequest struct {
	TargetRegionID string `json:"target_region_id"`
}

// ShiftWorkload handles POST /api/workloads/{id}/shift
func (h *Handler) ShiftWorkload(w http.ResponseWriter, r *http.Request) {
	id, err := workloadID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid workload id")
		return
	}

	var req shiftRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.TargetRegionID == "" {
		h.respondError(w, http.StatusBadRequest, "target_region_id is required")
		return
	}

	result, err := h.service.ShiftWorkload(r.Context(), actorFrom(r), id, req.TargetRegionID)
	if err != nil {
		h.logger.Warn("failed to shift workload",
			slog.String("workload_id", id.String()),
			slog.String("target_region", req.TargetRegionID),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
