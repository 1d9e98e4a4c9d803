package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// evaluateRequest is the POST /api/policy/evaluate body
type evaluateRequest struct {
	Action     string    `json:"action"`
	WorkloadID uuid.UUID `json:"workload_id"`
}

// EvaluatePolicy handles POST /api/policy/evaluate. It is a dry run: the
// decision is returned but nothing is audited or mutated.
func (h *Handler) EvaluatePolicy(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Action == "" {
		h.respondError(w, http.StatusBadRequest, "action is required")
		return
	}
	if req.WorkloadID == uuid.Nil {
		h.respondError(w, http.StatusBadRequest, "workload_id is required")
		return
	}

	decision, err := h.service.EvaluateAction(r.Context(), req.Action, req.WorkloadID)
	if err != nil {
		h.logger.Warn("failed to evaluate policy",
			slog.String("action", req.Action),
			slog.String("workload_id", req.WorkloadID.String()),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, decision)
}

// GetAuditTrail handles GET /api/audit with an optional ?limit=N
func (h *Handler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := h.service.AuditTrail(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list audit entries",
			slog.String("error", err.Error()),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to list audit entries")
		return
	}

	h.respondJSON(w, http.StatusOK, entries)
}
