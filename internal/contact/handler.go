package contact

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Handler exposes the public contact form and the admin inquiry list.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountPublicRoutes registers the public submission route.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/", h.submit)
}

// MountAdminRoutes registers the staff-facing inquiry routes.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{id}/status", h.updateStatus)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var draft InquiryDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	inq, err := h.service.Submit(r.Context(), draft)
	if err != nil {
		h.logger.Error("submit inquiry failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": inq})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var status *InquiryStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := InquiryStatus(s)
		if !st.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown inquiry status")
			return
		}
		status = &st
	}

	list, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list inquiries failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": list, "total": len(list)})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid inquiry id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}

	inq, err := h.service.UpdateStatus(r.Context(), id, InquiryStatus(req.Status))
	if err != nil {
		h.logger.Error("update inquiry status failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": inq})
}
