package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mjarosz/budgetmd/internal/ledger"
)

type Handler struct {
	store *ledger.Store
	now   func() time.Time
}

func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/yearly", h.yearly)
	r.Get("/breakdown", h.breakdown)
	r.Get("/breakdown/tree", h.breakdownTree)
	r.Get("/trends", h.trends)
	r.Get("/category-trends", h.categoryTrends)
	r.Get("/averages", h.averages)
	r.Get("/budgets", h.budgets)
}

// yearMonth reads year/month query params, defaulting to the current
// month.
func (h *Handler) yearMonth(r *http.Request) (int, int) {
	now := h.now()
	year, month := now.Year(), int(now.Month())

	if s := r.URL.Query().Get("year"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			year = n
		}
	}

	if s := r.URL.Query().Get("month"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
			month = n
		}
	}

	return year, month
}

func months(r *http.Request, fallback int) int {
	if s := r.URL.Query().Get("months"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}

	return fallback
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, month := h.yearMonth(r)
	respond(w, h.store.MonthlySummary(year, month, false))
}

func (h *Handler) yearly(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			year = n
		}
	}

	respond(w, h.store.YearlySummary(year))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	year, month := h.yearMonth(r)
	respond(w, h.store.CategoryBreakdown(year, month))
}

func (h *Handler) breakdownTree(w http.ResponseWriter, r *http.Request) {
	year, month := h.yearMonth(r)
	respond(w, h.store.HierarchicalCategoryBreakdown(year, month))
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	respond(w, h.store.Trends(months(r, 6)))
}

func (h *Handler) categoryTrends(w http.ResponseWriter, r *http.Request) {
	respond(w, h.store.CategoryTrends(months(r, 6)))
}

func (h *Handler) averages(w http.ResponseWriter, r *http.Request) {
	respond(w, h.store.AverageSpending())
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	year, month := h.yearMonth(r)
	respond(w, h.store.BudgetStatuses(year, month))
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
