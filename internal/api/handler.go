package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prashu0705/green-ai-orbit/internal/catalog"
	"github.com/prashu0705/green-ai-orbit/internal/metrics"
	"github.com/prashu0705/green-ai-orbit/internal/policy"
	"github.com/prashu0705/green-ai-orbit/internal/service"
	"github.com/prashu0705/green-ai-orbit/internal/store"
)

// actorHeader carries the caller identity recorded in the audit trail. It is
// trusted as-is; there is no authentication layer in front of it.
const actorHeader = "X-Actor"

// Handler holds the HTTP handlers and dependencies
type Handler struct {
	service  service.CarbonService
	logger   *slog.Logger
	basePath string
}

// NewHandler creates a new HTTP handler
func NewHandler(service service.CarbonService, basePath string, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		basePath: basePath,
	}
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Create routes handler
	routesHandler := h.createRoutes()

	// If base path is configured, mount routes on that path
	if h.basePath != "" {
		r.Mount(h.basePath, routesHandler)
	} else {
		r.Mount("/", routesHandler)
	}

	return r
}

// createRoutes creates the API routes
func (h *Handler) createRoutes() http.Handler {
	r := chi.NewRouter()

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Region routes
		r.Get("/regions", h.ListRegions)
		r.Get("/regions/summary", h.RegionSummaries)
		r.Get("/regions/{id}/forecast", h.GetForecast)

		// Workload routes
		r.Get("/workloads", h.ListWorkloads)
		r.Post("/workloads", h.RegisterWorkload)
		r.Get("/workloads/{id}", h.GetWorkload)
		r.Get("/workloads/{id}/opportunity", h.GetOpportunity)
		r.Post("/workloads/{id}/shift", h.ShiftWorkload)

		// Governance routes
		r.Post("/policy/evaluate", h.EvaluatePolicy)
		r.Get("/audit", h.GetAuditTrail)

		r.Get("/status", h.GetStatus)
	})

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// loggingMiddleware logs HTTP requests
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

// actorFrom extracts the audit actor from the request headers
func actorFrom(r *http.Request) string {
	return r.Header.Get(actorHeader)
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrRegionNotFound),
		errors.Is(err, store.ErrWorkloadNotFound):
		return http.StatusNotFound
	case errors.Is(err, policy.ErrViolation):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse represents an error response
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response",
			slog.String("error", err.Error()),
		)
	}
}

// respondError writes an error response
func (h *Handler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, errorResponse{Error: message})
}

// decodeJSON reads a request body into dst, limiting its size
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
