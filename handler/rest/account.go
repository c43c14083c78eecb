package rest

import (
	"net/http"

	"levra/core"
	"levra/handler/render"
	"levra/handler/views"
	"levra/pkg/leverage"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func accountHandler(accountStore core.AccountStore, poolService core.PoolService, assets core.AssetLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		account, err := accountStore.Find(r.Context(), address)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		balance, err := assets.Balance(r.Context(), address)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		info, err := poolService.VaultInfo(r.Context())
		if err != nil {
			render.CodeError(w, err)
			return
		}

		shareValue := leverage.RedeemAssets(account.Shares, info.TotalShares, info.TotalAssets)
		pendingYield := shareValue.Sub(account.Principal)
		if pendingYield.IsNegative() {
			pendingYield = decimal.Zero
		}

		render.JSON(w, views.Account{
			Address:         address,
			Balance:         balance,
			Shares:          account.Shares,
			DepositedAssets: account.Principal,
			PendingYield:    pendingYield,
		})
	}
}
