package items

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Handler exposes inventory item management over JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers item routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/options", h.options)
	r.Post("/batch-delete", h.batchDelete)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := ListItemsRequest{}
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		status := ItemStatus(s)
		req.Status = &status
	}
	if s := q.Get("designer"); s != "" {
		req.Designer = &s
	}
	if s := q.Get("category"); s != "" {
		req.Category = &s
	}
	if s := q.Get("q"); s != "" {
		req.Query = &s
	}
	if s := q.Get("limit"); s != "" {
		req.Limit, _ = strconv.Atoi(s)
	}

	items, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var draft ItemDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	item, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("create item failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": item})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": item})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	var draft ItemDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	item, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		h.logger.Error("update item failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": item})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete item failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": deleted})
}

func (h *Handler) batchDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}

	deleted, err := h.service.BatchDelete(r.Context(), req.IDs)
	if err != nil {
		h.logger.Error("batch delete items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": deleted})
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.Error("item options failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": opts})
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
