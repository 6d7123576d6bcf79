package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/budget-ledger/internal/auth"
	"github.com/frahmantamala/budget-ledger/internal/category"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	"github.com/frahmantamala/budget-ledger/internal/transport/middleware"
	"github.com/frahmantamala/budget-ledger/internal/user"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires middleware and all API routes. Everything
// below /api/v1 except auth and health sits behind the JWT guard.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	transactionHandler *transaction.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/sign-up", authHandler.SignUp)
			sr.Post("/sign-in", authHandler.SignIn)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", categoryHandler.ListCategories)
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Get("/{id}", categoryHandler.GetCategory)
				cr.Put("/{id}", categoryHandler.UpdateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
				cr.Get("/{id}/transactions", categoryHandler.GetCategoryTransactions)
			})

			pr.Route("/transactions", func(tr chi.Router) {
				tr.Get("/", transactionHandler.ListTransactions)
				tr.Post("/", transactionHandler.CreateTransaction)
				tr.Get("/{id}", transactionHandler.GetTransaction)
				tr.Put("/{id}", transactionHandler.UpdateTransaction)
				tr.Delete("/{id}", transactionHandler.DeleteTransaction)
			})
		})
	})
}
