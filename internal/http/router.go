package http

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mjarosz/budgetmd/internal/http/report"
	"github.com/mjarosz/budgetmd/internal/http/settingsapi"
	"github.com/mjarosz/budgetmd/internal/http/syncdocs"
	"github.com/mjarosz/budgetmd/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	reportsV1 *report.Handler,
	importV1 *syncdocs.Handler,
	settingsV1 *settingsapi.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(serializeWrites())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/sync", importV1.Routes)

		r.Route("/settings", func(r chi.Router) {
			settingsV1.Routes(r)
		})
	})

	return router
}

// serializeWrites guards the single-actor engine underneath: mutating
// requests take the write lock, reads share the read lock.
func serializeWrites() func(http.Handler) http.Handler {
	var mu sync.RWMutex

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				mu.RLock()
				defer mu.RUnlock()
			} else {
				mu.Lock()
				defer mu.Unlock()
			}

			next.ServeHTTP(w, r)
		})
	}
}
