package rest

import (
	"errors"
	"net/http"

	"levra/core"
	"levra/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	database *db.DB,
	poolService core.PoolService,
	collateralService core.CollateralService,
	loanService core.LoanService,
	accountStore core.AccountStore,
	loanStore core.LoanStore,
	assets core.AssetLedger,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pool", vaultInfoHandler(poolService))
	router.Post("/deposits", depositHandler(poolService))
	router.Post("/withdrawals", withdrawHandler(poolService))
	router.Get("/accounts/{address}", accountHandler(accountStore, poolService, assets))

	router.Get("/collaterals", collateralHandler(collateralService))
	router.Post("/collaterals", submitCollateralHandler(collateralService))
	router.Post("/collaterals/withdrawals", withdrawCollateralHandler(collateralService))

	router.Get("/loans", borrowerLoansHandler(loanStore, loanService))
	router.Post("/loans", initiateLoanHandler(loanService))
	router.Get("/loans/{id}", loanHandler(loanStore, loanService))
	router.Post("/loans/{id}/repayments", repayLoanHandler(loanService))
	router.Get("/stats", statsHandler(loanService))

	router.Post("/faucet", faucetHandler(cfg, database, assets))

	return router
}
