package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// Handler exposes login, logout, and the session probe.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions}
}

// MountRoutes registers auth routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/session", h.session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}

	if err := h.service.Authenticate(r.Context(), req.Password); err != nil {
		h.logger.Warn("login rejected", slog.String("remote", r.RemoteAddr))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "session unavailable")
		return
	}
	sess.SetUser(AdminUserID)

	httpx.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"user": AdminUserID}})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		h.sessions.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"logged_out": true}})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		httpx.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"authenticated": false}})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"authenticated": true, "user": sess.User()},
	})
}
