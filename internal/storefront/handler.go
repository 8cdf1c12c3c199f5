package storefront

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Handler serves the public read-only storefront.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers public storefront routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.items)
	r.Get("/items/{slug}", h.itemBySlug)
	r.Get("/featured", h.featured)
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	tag := negotiateLocale(r)
	filter := ListFilter{
		Category:       r.URL.Query().Get("category"),
		DesignerSeries: r.URL.Query().Get("designer"),
	}

	items, err := h.service.Items(r.Context(), filter, tag)
	if err != nil {
		h.logger.Error("storefront items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
}

func (h *Handler) itemBySlug(w http.ResponseWriter, r *http.Request) {
	tag := negotiateLocale(r)

	item, err := h.service.ItemBySlug(r.Context(), chi.URLParam(r, "slug"), tag)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": item})
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	tag := negotiateLocale(r)

	products, err := h.service.FeaturedProducts(r.Context(), tag)
	if err != nil {
		h.logger.Error("storefront featured failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": products})
}
