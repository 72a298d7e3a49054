package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/auth"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	session core.Session,
	lendingz core.ILendingService,
	events core.IEventStore,
	accounts core.IAccountStore,
) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.HandleAuthentication(session))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w)
	})

	router.Route("/tokens", func(r chi.Router) {
		r.Get("/", tokensHandler(lendingz))
		r.With(auth.LoginRequired).Post("/", setTokenHandler(lendingz))
		r.Get("/{asset}", tokenHandler(lendingz))
		r.With(auth.LoginRequired).Get("/{asset}/balance", balanceHandler(lendingz))
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)
		r.Post("/deposits", balanceActionHandler(lendingz.Deposit))
		r.Post("/withdrawals", balanceActionHandler(lendingz.Withdraw))
		r.Post("/borrows", balanceActionHandler(lendingz.Borrow))
		r.Post("/repays", balanceActionHandler(lendingz.Repay))
	})

	router.Route("/accounts/{user}", func(r chi.Router) {
		r.Get("/", accountHandler(lendingz))
		r.Get("/collateral-value", valueHandler(lendingz.GetAccountCollateralValue))
		r.Get("/borrowed-value", valueHandler(lendingz.GetAccountBorrowedValue))
		r.Get("/health-factor", healthFactorHandler(lendingz))
		r.Get("/health-snapshot", healthSnapshotHandler(accounts))
	})

	router.Get("/events", eventsHandler(events))

	return router
}
