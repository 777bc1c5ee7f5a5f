package settingsapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mjarosz/budgetmd/internal/settings"
)

// Config exposes the active configuration and applies updates.
type Config interface {
	Settings() *settings.Settings
	UpdateSettings(*settings.Settings) error
}

type Handler struct {
	cfg Config
}

func NewHandler(cfg Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.put)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.cfg.Settings()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	var next settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cfg.UpdateSettings(&next); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.cfg.Settings()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
