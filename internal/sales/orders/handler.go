package orders

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// Handler exposes the order lifecycle over JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers order routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/next-number", h.nextNumber)
	r.Get("/available-items", h.availableItems)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := ListOrdersRequest{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := SalesOrderStatus(s)
		req.Status = &status
	}
	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid customer_id")
			return
		}
		req.CustomerID = &id
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		req.Limit, _ = strconv.Atoi(s)
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		req.Offset, _ = strconv.Atoi(s)
	}

	orders, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	perPage := req.Limit
	if perPage <= 0 {
		perPage = 50
	}
	page := 1
	if perPage > 0 {
		page = req.Offset/perPage + 1
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       orders,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var draft OrderDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	order, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("create order failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": order})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid order id")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": order})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid order id")
		return
	}

	var draft OrderDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	order, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		h.logger.Error("update order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": order})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid order id")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": deleted})
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.service.NextOrderNumber(r.Context())
	if err != nil {
		h.logger.Error("next order number failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"order_number": number}})
}

func (h *Handler) availableItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.AvailableItems(r.Context())
	if err != nil {
		h.logger.Error("available items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": items})
}

func orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
