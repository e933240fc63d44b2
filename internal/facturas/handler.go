package facturas

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facturio/backend/pkg/tenant"
)

// Service is what the HTTP layer needs from the invoice domain.
// Repository satisfies it; tests substitute a stub.
type Service interface {
	List(ctx context.Context, tenantID string) ([]Factura, error)
	ListPending(ctx context.Context, tenantID string) ([]Factura, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (Factura, error)
	MarkPaid(ctx context.Context, tenantID string, id uuid.UUID) (Factura, error)
}

// Handler serves the invoice API consumed by the dashboard.
type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Routes mounts the invoice endpoints. All of them require tenant context;
// mount behind the tenant middleware.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(tenant.RequireTenant(nil))

	r.Get("/facturas", h.list)
	r.Get("/facturas-pendientes", h.listPending)
	r.Get("/facturas/{id}", h.get)
	r.Post("/facturas/{id}/pay", h.markPaid)

	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())

	out, err := h.svc.List(r.Context(), t.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, out)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())

	out, err := h.svc.ListPending(r.Context(), t.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErrorCode(w, http.StatusBadRequest, "invalid_id", "invalid factura id")
		return
	}

	out, err := h.svc.Get(r.Context(), t.ID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, out)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErrorCode(w, http.StatusBadRequest, "invalid_id", "invalid factura id")
		return
	}

	out, err := h.svc.MarkPaid(r.Context(), t.ID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, out)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) respondErrorCode(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": errorResponse{Code: code, Message: message}})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.respondErrorCode(w, http.StatusNotFound, "not_found", "factura not found")
	case errors.Is(err, ErrAlreadyPaid):
		h.respondErrorCode(w, http.StatusConflict, "already_paid", "factura is already paid")
	default:
		h.log.ErrorContext(r.Context(), "factura request failed", "error", err)
		h.respondErrorCode(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
