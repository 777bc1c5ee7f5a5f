package syncdocs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Syncer runs the document reconciliation pass.
type Syncer interface {
	SyncFromDocuments() (int, error)
}

type Handler struct {
	syncer Syncer
}

func NewHandler(syncer Syncer) *Handler {
	return &Handler{syncer: syncer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	n, err := h.syncer.SyncFromDocuments()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{Imported: n}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
