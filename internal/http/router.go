package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mewicrm/mewi/internal/auth"
	clienthandler "github.com/mewicrm/mewi/internal/http/client"
	commhandler "github.com/mewicrm/mewi/internal/http/communication"
	debtorhandler "github.com/mewicrm/mewi/internal/http/debtor"
	dunninghandler "github.com/mewicrm/mewi/internal/http/dunning"
	historyhandler "github.com/mewicrm/mewi/internal/http/history"
	"github.com/mewicrm/mewi/internal/http/importcsv"
	invoicehandler "github.com/mewicrm/mewi/internal/http/invoice"
	paymenthandler "github.com/mewicrm/mewi/internal/http/payment"
	"github.com/mewicrm/mewi/internal/http/session"
)

func New(
	tokens *auth.JWTManager,
	allowedOrigins []string,
	sessionV1 *session.Handler,
	clientsV1 *clienthandler.Handler,
	debtorsV1 *debtorhandler.Handler,
	invoicesV1 *invoicehandler.Handler,
	paymentsV1 *paymenthandler.Handler,
	communicationsV1 *commhandler.Handler,
	historyV1 *historyhandler.Handler,
	dunningV1 *dunninghandler.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sessionV1.Routes(r)
		})

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(tokens))

			r.Route("/clients", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient))
				clientsV1.Routes(r)
			})

			r.Route("/debtors", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient))
				debtorsV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient))
				invoicesV1.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient, auth.RoleDebiteur))
				paymentsV1.Routes(r)
			})

			r.Route("/communications", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient, auth.RoleDebiteur))
				communicationsV1.Routes(r)
			})

			r.Route("/history", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient))
				historyV1.Routes(r)
			})

			r.Route("/dunning", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager))
				dunningV1.Routes(r)
			})

			r.Route("/import", func(r chi.Router) {
				r.Use(RequireRole(auth.RoleManager, auth.RoleClient))
				importV1.Routes(r)
			})
		})
	})

	return router
}
