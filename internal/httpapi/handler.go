// Package httpapi exposes the checker over HTTP
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kitodo/dlfcheck/internal/identifier"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/kitodo/dlfcheck/internal/model"
)

// Checker defines the checker operations used by the handlers
type Checker interface {
	CheckIdentifier(ctx context.Context, id, typeName string) (*model.CheckRecord, error)
	URN(ctx context.Context, base, id string) (*model.CheckRecord, error)
	VerifyURN(ctx context.Context, urn string) (*model.CheckRecord, error)
	Records(ctx context.Context, filter model.RecordFilter, sortBy string) ([]*model.CheckRecord, error)
}

// Handler wires HTTP endpoints to the checker
type Handler struct {
	checker Checker
	logger  *slog.Logger
}

// New constructs a handler
func New(checker Checker, logger *slog.Logger) *Handler {
	return &Handler{checker: checker, logger: logger}
}

// Register mounts the API endpoints on the router
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/identifiers/check", h.HandleCheck)
		r.Post("/urn", h.HandleURN)
		r.Get("/urn/verify", h.HandleVerifyURN)
		r.Get("/records", h.HandleRecords)
	})
}

// NewRouter builds the complete router including middleware and /metrics
func NewRouter(checker Checker, log *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	New(checker, log).Register(r)
	return r
}

// CheckRequest is the body of POST /v1/identifiers/check
type CheckRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// URNRequest is the body of POST /v1/urn
type URNRequest struct {
	Base string `json:"base"`
	ID   string `json:"id"`
}

// RecordResponse is the JSON form of a check record
type RecordResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Input     string `json:"input"`
	Output    string `json:"output,omitempty"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	CheckTime string `json:"checkTime"`
}

// FromRecord converts a record for the wire
func FromRecord(record *model.CheckRecord) RecordResponse {
	return RecordResponse{
		ID:        record.ID,
		Kind:      record.Kind,
		Input:     record.Input,
		Output:    record.Output,
		Valid:     record.Valid,
		Reason:    record.Reason,
		CheckTime: record.CheckTime.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleCheck handles POST /v1/identifiers/check
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithRequest(h.logger, middleware.GetReqID(ctx))

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id field is required")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type field is required")
		return
	}

	record, err := h.checker.CheckIdentifier(ctx, req.ID, req.Type)
	if errors.Is(err, identifier.ErrUnknownType) {
		writeError(w, http.StatusBadRequest, "invalid identifier type. "+identifier.ValidTypesText())
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "identifier check failed", "id", req.ID, "type", req.Type, "error", err)
		writeError(w, http.StatusInternalServerError, "identifier check failed")
		return
	}

	log.InfoContext(ctx, "identifier checked", "id", req.ID, "type", record.Kind, "valid", record.Valid)
	writeJSON(w, http.StatusOK, FromRecord(record))
}

// HandleURN handles POST /v1/urn
func (h *Handler) HandleURN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req URNRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" && req.Base == "" {
		writeError(w, http.StatusBadRequest, "base or id field is required")
		return
	}

	record, err := h.checker.URN(ctx, req.Base, req.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "urn computation failed", "base", req.Base, "id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "urn computation failed")
		return
	}
	if !record.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, FromRecord(record))
		return
	}
	writeJSON(w, http.StatusOK, FromRecord(record))
}

// HandleVerifyURN handles GET /v1/urn/verify?urn=...
func (h *Handler) HandleVerifyURN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	full := strings.TrimSpace(r.URL.Query().Get("urn"))
	if full == "" {
		writeError(w, http.StatusBadRequest, "urn query parameter is required")
		return
	}

	record, err := h.checker.VerifyURN(ctx, full)
	if err != nil {
		h.logger.ErrorContext(ctx, "urn verification failed", "urn", full, "error", err)
		writeError(w, http.StatusInternalServerError, "urn verification failed")
		return
	}
	writeJSON(w, http.StatusOK, FromRecord(record))
}

// HandleRecords handles GET /v1/records?kind=&input=&valid=&sort=
func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := model.RecordFilter{
		Kinds:  query["kind"],
		Inputs: query["input"],
	}
	switch query.Get("valid") {
	case "":
	case "true":
		valid := true
		filter.Valid = &valid
	case "false":
		valid := false
		filter.Valid = &valid
	default:
		writeError(w, http.StatusBadRequest, "valid must be true or false")
		return
	}

	records, err := h.checker.Records(ctx, filter, query.Get("sort"))
	if err != nil {
		h.logger.ErrorContext(ctx, "listing records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	response := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, FromRecord(record))
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
