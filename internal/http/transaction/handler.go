package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mjarosz/budgetmd/internal/ledger"
)

// Saver persists the ledger blob after a mutation.
type Saver interface {
	SaveData() error
}

type Handler struct {
	store *ledger.Store
	saver Saver
}

func NewHandler(store *ledger.Store, saver Saver) *Handler {
	return &Handler{store: store, saver: saver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/recent", h.recent)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ledger.Candidate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.store.Add(req)
	if tx == nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err != nil {
		slog.Error("failed to regenerate month document", "error", err)
	}

	h.save()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(tx); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ledger.Filter{
		From:     q.Get("from"),
		To:       q.Get("to"),
		Category: q.Get("category"),
		Type:     ledger.Type(q.Get("type")),
		Search:   q.Get("search"),
	}

	respond(w, h.store.List(filter))
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	respond(w, h.store.Recent(limit))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	respond(w, tx)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch ledger.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.store.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		if tx == nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to regenerate month document", "error", err)
	}

	h.save()

	respond(w, tx)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.store.Delete(chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("failed to regenerate month document", "error", err)
	}

	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	h.save()

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) save() {
	if err := h.saver.SaveData(); err != nil {
		slog.Error("failed to persist ledger", "error", err)
	}
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
